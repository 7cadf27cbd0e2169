package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name     string
		opts     *ListQueryOptions
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "basic select",
			opts:    NewListQueryOptions("ads"),
			wantSQL: `SELECT * FROM "ads"`,
		},
		{
			name:    "columns and qualified columns",
			opts:    NewListQueryOptions("ads", WithColumns("id", "ads.title")),
			wantSQL: `SELECT "id", "ads"."title" FROM "ads"`,
		},
		{
			name: "count only ignores paging",
			opts: NewListQueryOptions("ads",
				WithCountOnly(),
				WithCondition(WhereCond("status", Equal, "approved")),
				WithLimit(10),
			),
			wantSQL:  `SELECT COUNT(*) FROM "ads" WHERE "status" = $1`,
			wantArgs: []any{"approved"},
		},
		{
			name: "in condition",
			opts: NewListQueryOptions("users",
				WithCondition(WhereCond("role", In, []string{"client", "provider"})),
			),
			wantSQL:  `SELECT * FROM "users" WHERE "role" IN ($1, $2)`,
			wantArgs: []any{"client", "provider"},
		},
		{
			name: "empty in is skipped",
			opts: NewListQueryOptions("users",
				WithCondition(WhereCond("role", In, []string{})),
			),
			wantSQL: `SELECT * FROM "users"`,
		},
		{
			name: "custom renumbers placeholders",
			opts: NewListQueryOptions("ads",
				WithCondition(WhereCond("owner_id", Equal, "p1")),
				WithCondition(WhereRawCond("(price_cents >= $1 OR price_cents = $1)", 100)),
			),
			wantSQL:  `SELECT * FROM "ads" WHERE "owner_id" = $1 AND (price_cents >= $2 OR price_cents = $2)`,
			wantArgs: []any{"p1", 100},
		},
		{
			name: "full query",
			opts: NewListQueryOptions("ads",
				WithColumns("id", "title"),
				WithCondition(WhereCond("status", Equal, "approved")),
				WithCondition(WhereCond("title", ILike, "%plumb%")),
				WithOrderBy("created_at", "desc"),
				WithLimit(50),
				WithOffset(0),
			),
			wantSQL:  `SELECT "id", "title" FROM "ads" WHERE "status" = $1 AND "title" ILIKE $2 ORDER BY "created_at" DESC LIMIT $3 OFFSET $4`,
			wantArgs: []any{"approved", "%plumb%", 50, 0},
		},
		{
			name:    "invalid order direction dropped",
			opts:    NewListQueryOptions("ads", WithOrderBy("created_at", "sideways")),
			wantSQL: `SELECT * FROM "ads" ORDER BY "created_at"`,
		},
		{
			name:    "identifier injection is quoted",
			opts:    NewListQueryOptions("ads; DROP TABLE users;--"),
			wantSQL: `SELECT * FROM "ads; DROP TABLE users;--"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := BuildListQuery(tt.opts)
			assert.Equal(t, tt.wantSQL, sql)
			if len(tt.wantArgs) == 0 {
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestWhereCond_CustomPanics(t *testing.T) {
	assert.Panics(t, func() { WhereCond("x", Custom, nil) })
}

func TestBuildListQuery_Nil(t *testing.T) {
	sql, args := BuildListQuery(nil)
	assert.Empty(t, sql)
	assert.Nil(t, args)
}
