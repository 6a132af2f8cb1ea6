package ddl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/schemamap/internal/schema"
)

func strPtr(s string) *string { return &s }

func mustTable(t *testing.T, result schema.ParseResult, name string) *schema.Table {
	t.Helper()
	table, ok := result.Table(name)
	require.True(t, ok, "table %q not found in %+v", name, result.Tables)
	return table
}

func mustColumn(t *testing.T, table *schema.Table, name string) *schema.Column {
	t.Helper()
	col, ok := table.Column(name)
	require.True(t, ok, "column %q not found in table %q", name, table.Name)
	return col
}

// assertInvariants checks the properties every parse result must satisfy
func assertInvariants(t *testing.T, result schema.ParseResult) {
	t.Helper()
	for _, table := range result.Tables {
		for _, col := range table.Columns {
			assert.Equal(t, col.IsForeignKey, col.References != nil, "%s.%s", table.Name, col.Name)

			pkLabels := 0
			for _, c := range col.Constraints {
				if c == schema.ConstraintPrimaryKey {
					pkLabels++
				}
			}
			if col.IsPrimaryKey {
				assert.Equal(t, 1, pkLabels, "%s.%s", table.Name, col.Name)
			} else {
				assert.Zero(t, pkLabels, "%s.%s", table.Name, col.Name)
			}
		}
	}
}

func TestParseSerialPrimaryKey(t *testing.T) {
	result := Parse("CREATE TABLE users (id SERIAL PRIMARY KEY, name VARCHAR(100) NOT NULL, email VARCHAR(255) UNIQUE);")
	assertInvariants(t, result)

	assert.Empty(t, result.Errors)
	require.Len(t, result.Tables, 1)
	users := mustTable(t, result, "users")
	require.Len(t, users.Columns, 3)

	id := mustColumn(t, users, "id")
	assert.True(t, id.IsPrimaryKey)
	assert.Equal(t, []string{"PRIMARY KEY", "AUTO_INCREMENT"}, id.Constraints)
	assert.Equal(t, "SERIAL", id.Type)

	name := mustColumn(t, users, "name")
	assert.False(t, name.Nullable)
	assert.Equal(t, "VARCHAR(100)", name.Type)
	assert.Equal(t, []string{"NOT NULL"}, name.Constraints)

	email := mustColumn(t, users, "email")
	assert.True(t, email.Nullable)
	assert.Contains(t, email.Constraints, "UNIQUE")
}

func TestParseInlineReference(t *testing.T) {
	sql := `
CREATE TABLE users (id INT PRIMARY KEY);
CREATE TABLE orders (
    id INT PRIMARY KEY,
    user_id INT REFERENCES users(id)
);`
	result := Parse(sql)
	assertInvariants(t, result)

	orders := mustTable(t, result, "orders")
	userID := mustColumn(t, orders, "user_id")
	assert.True(t, userID.IsForeignKey)
	assert.Equal(t, &schema.Reference{Table: "users", Column: "id"}, userID.References)

	assert.Equal(t, []schema.Relationship{
		{FromTable: "orders", FromColumn: "user_id", ToTable: "users", ToColumn: "id"},
	}, result.Relationships)
}

func TestParseTableLevelForeignKey(t *testing.T) {
	sql := `CREATE TABLE employees (
    id INT PRIMARY KEY,
    department_id INT,
    CONSTRAINT fk_dept FOREIGN KEY (department_id) REFERENCES departments(id) ON DELETE CASCADE
);`
	result := Parse(sql)
	assertInvariants(t, result)

	require.Len(t, result.Relationships, 1)
	rel := result.Relationships[0]
	assert.Equal(t, "CASCADE", rel.OnDelete)
	assert.Empty(t, rel.OnUpdate)
	assert.Equal(t, "departments", rel.ToTable)

	employees := mustTable(t, result, "employees")
	require.Len(t, employees.Columns, 2)
	dept := mustColumn(t, employees, "department_id")
	assert.True(t, dept.IsForeignKey)
	assert.Equal(t, "departments", dept.References.Table)
}

func TestParseSelfReference(t *testing.T) {
	result := Parse("CREATE TABLE employees (id INT PRIMARY KEY, manager_id INT REFERENCES employees(id));")
	assertInvariants(t, result)

	require.Len(t, result.Relationships, 1)
	rel := result.Relationships[0]
	assert.Equal(t, "employees", rel.FromTable)
	assert.Equal(t, "employees", rel.ToTable)
	assert.Equal(t, "manager_id", rel.FromColumn)
}

func TestParseEmptyInput(t *testing.T) {
	result := Parse("")
	assert.Empty(t, result.Tables)
	assert.NotNil(t, result.Tables)
	assert.Empty(t, result.Relationships)
	assert.Equal(t, []string{NoTablesMessage}, result.Errors)
}

func TestParseCompositePrimaryKey(t *testing.T) {
	sql := `CREATE TABLE memberships (
    a INT NOT NULL,
    b INT NOT NULL,
    role TEXT,
    PRIMARY KEY (a, b)
);`
	result := Parse(sql)
	assertInvariants(t, result)

	table := mustTable(t, result, "memberships")
	assert.Equal(t, []string{"a", "b"}, table.PrimaryKey())
	assert.Equal(t, []string{"PRIMARY KEY", "NOT NULL"}, mustColumn(t, table, "a").Constraints)
	assert.False(t, mustColumn(t, table, "role").IsPrimaryKey)
	require.Len(t, table.Columns, 3)
}

func TestParsePrimaryKeyNotDuplicated(t *testing.T) {
	result := Parse("CREATE TABLE t (id INT PRIMARY KEY, PRIMARY KEY (id));")
	assertInvariants(t, result)
	assert.Equal(t, []string{"PRIMARY KEY"}, result.Tables[0].Columns[0].Constraints)
}

func TestParseDecimalNotSplit(t *testing.T) {
	result := Parse("CREATE TABLE products (price DECIMAL(10,2) NOT NULL, qty INT);")
	products := mustTable(t, result, "products")
	require.Len(t, products.Columns, 2)
	assert.Equal(t, "DECIMAL(10,2)", products.Columns[0].Type)
}

func TestParseColumnTypes(t *testing.T) {
	tests := []struct {
		definition string
		expected   string
	}{
		{"c INT(11) UNSIGNED NOT NULL", "INT(11) UNSIGNED"},
		{"c character varying(255)", "character varying(255)"},
		{"c TIMESTAMP WITH TIME ZONE", "TIMESTAMP WITH TIME ZONE"},
		{"c timestamp(3) without time zone", "timestamp(3) without time zone"},
		{"c DOUBLE PRECISION", "DOUBLE PRECISION"},
		{"c VARCHAR(50) CHARACTER SET utf8mb4 NOT NULL", "VARCHAR(50) CHARACTER SET utf8mb4"},
		{"c TEXT[]", "TEXT[]"},
		{"c ENUM('draft','published')", "ENUM('draft','published')"},
		{"c public.citext", "public.citext"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := Parse("CREATE TABLE t (" + tt.definition + ");")
			require.Len(t, result.Tables, 1)
			require.Len(t, result.Tables[0].Columns, 1)
			assert.Equal(t, tt.expected, result.Tables[0].Columns[0].Type)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	tests := []struct {
		definition string
		expected   *string
	}{
		{"c TEXT", nil},
		{"c TEXT DEFAULT 'active'", strPtr("active")},
		{`c TEXT DEFAULT "active"`, strPtr("active")},
		{"c TEXT DEFAULT 'it''s'", strPtr("it's")},
		{`c TEXT DEFAULT 'it\'s'`, strPtr("it's")},
		{"c TEXT DEFAULT '-- not a comment' NOT NULL", strPtr("-- not a comment")},
		{"c INT DEFAULT 0", strPtr("0")},
		{"c INT DEFAULT -1", strPtr("-1")},
		{"c BOOLEAN DEFAULT false NOT NULL", strPtr("false")},
		{"c TIMESTAMP DEFAULT now()", strPtr("now()")},
		{"c TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP", strPtr("CURRENT_TIMESTAMP")},
		{"c TEXT DEFAULT 'x'::text", strPtr("'x'::text")},
		{"c UUID DEFAULT gen_random_uuid() PRIMARY KEY", strPtr("gen_random_uuid()")},
		{"c INT DEFAULT NULL", strPtr("NULL")},
	}

	for _, tt := range tests {
		t.Run(tt.definition, func(t *testing.T) {
			result := Parse("CREATE TABLE t (" + tt.definition + ");")
			require.Len(t, result.Tables, 1)
			require.Len(t, result.Tables[0].Columns, 1)
			assert.Equal(t, tt.expected, result.Tables[0].Columns[0].DefaultValue)
		})
	}
}

func TestParseConstraintLabels(t *testing.T) {
	tests := []struct {
		definition string
		expected   []string
		nullable   bool
	}{
		{"c INT", []string{}, true},
		{"c INT NULL", []string{}, true},
		{"c INT NOT NULL", []string{"NOT NULL"}, false},
		{"c INT NOT NULL AUTO_INCREMENT PRIMARY KEY", []string{"PRIMARY KEY", "AUTO_INCREMENT", "NOT NULL"}, false},
		{"c BIGSERIAL", []string{"AUTO_INCREMENT"}, true},
		{"c INTEGER PRIMARY KEY AUTOINCREMENT", []string{"PRIMARY KEY", "AUTO_INCREMENT"}, true},
		{"c INT GENERATED ALWAYS AS IDENTITY", []string{"AUTO_INCREMENT"}, true},
		{"c INT GENERATED BY DEFAULT AS IDENTITY (START WITH 10)", []string{"AUTO_INCREMENT"}, true},
		{"c INT GENERATED ALWAYS AS (a + b) STORED", []string{}, true},
		{"c VARCHAR(20) UNIQUE NOT NULL", []string{"UNIQUE", "NOT NULL"}, false},
		{"c VARCHAR(20) NOT NULL UNIQUE KEY", []string{"UNIQUE", "NOT NULL"}, false},
		{"c INT CHECK (c > 0) NOT NULL", []string{"NOT NULL"}, false},
		{"c VARCHAR(20) COLLATE utf8mb4_bin COMMENT 'the name'", []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.definition, func(t *testing.T) {
			result := Parse("CREATE TABLE t (" + tt.definition + ");")
			assertInvariants(t, result)
			require.Len(t, result.Tables, 1)
			col := result.Tables[0].Columns[0]
			assert.Equal(t, tt.expected, col.Constraints)
			assert.Equal(t, tt.nullable, col.Nullable)
		})
	}
}

func TestParseReferentialActions(t *testing.T) {
	tests := []struct {
		clause   string
		onDelete string
		onUpdate string
	}{
		{"ON DELETE CASCADE", "CASCADE", ""},
		{"on delete set null", "SET NULL", ""},
		{"ON DELETE NO ACTION ON UPDATE CASCADE", "NO ACTION", "CASCADE"},
		{"ON UPDATE RESTRICT ON DELETE SET DEFAULT", "SET DEFAULT", "RESTRICT"},
		{"MATCH FULL ON DELETE CASCADE DEFERRABLE INITIALLY DEFERRED", "CASCADE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.clause, func(t *testing.T) {
			for _, sql := range []string{
				"CREATE TABLE t (p INT REFERENCES parent(id) " + tt.clause + ");",
				"CREATE TABLE t (p INT, FOREIGN KEY (p) REFERENCES parent(id) " + tt.clause + ");",
			} {
				result := Parse(sql)
				require.Len(t, result.Relationships, 1, sql)
				assert.Equal(t, tt.onDelete, result.Relationships[0].OnDelete, sql)
				assert.Equal(t, tt.onUpdate, result.Relationships[0].OnUpdate, sql)
			}
		})
	}
}

func TestParseForeignKeyToMissingColumn(t *testing.T) {
	result := Parse("CREATE TABLE t (id INT, FOREIGN KEY (ghost_id) REFERENCES ghosts(id));")
	assertInvariants(t, result)

	require.Len(t, result.Relationships, 1)
	assert.Equal(t, "ghost_id", result.Relationships[0].FromColumn)
	assert.False(t, result.Tables[0].Columns[0].IsForeignKey)
}

func TestParseCompositeForeignKey(t *testing.T) {
	sql := `CREATE TABLE line_items (
    order_id INT,
    order_rev INT,
    FOREIGN KEY (order_id, order_rev) REFERENCES public.orders (id, rev)
);`
	result := Parse(sql)
	assertInvariants(t, result)

	assert.Equal(t, []schema.Relationship{
		{FromTable: "line_items", FromColumn: "order_id", ToTable: "orders", ToColumn: "id"},
		{FromTable: "line_items", FromColumn: "order_rev", ToTable: "orders", ToColumn: "rev"},
	}, result.Relationships)
}

func TestParseReferenceWithoutColumn(t *testing.T) {
	result := Parse("CREATE TABLE t (parent_id INT REFERENCES parent);")
	assertInvariants(t, result)
	assert.Empty(t, result.Relationships)
	assert.False(t, result.Tables[0].Columns[0].IsForeignKey)
}

func TestParseIndexes(t *testing.T) {
	sql := "CREATE TABLE `posts` (\n" +
		"  `id` int NOT NULL,\n" +
		"  `slug` varchar(200) NOT NULL,\n" +
		"  `author_id` int,\n" +
		"  UNIQUE KEY `uniq_slug` (`slug`),\n" +
		"  KEY `idx_author` (`author_id`) USING BTREE,\n" +
		"  INDEX (`author_id`, `slug`(10)),\n" +
		"  CONSTRAINT chk_id CHECK (id > 0)\n" +
		");"
	result := Parse(sql)
	assert.Empty(t, result.Errors)

	posts := mustTable(t, result, "posts")
	require.Len(t, posts.Columns, 3)
	assert.Equal(t, []schema.Index{
		{Name: "uniq_slug", Columns: []string{"slug"}, IsUnique: true},
		{Name: "idx_author", Columns: []string{"author_id"}},
		{Columns: []string{"author_id", "slug"}},
	}, posts.Indexes)
	assert.NotContains(t, mustColumn(t, posts, "slug").Constraints, "UNIQUE")
}

func TestParseNamedUniqueConstraint(t *testing.T) {
	sql := `CREATE TABLE "accounts" (
  "id" integer NOT NULL,
  "email" varchar(255) NOT NULL,
  PRIMARY KEY ("id"),
  CONSTRAINT "accounts_email_key" UNIQUE ("email")
);`
	result := Parse(sql)
	assert.Empty(t, result.Errors)

	accounts := mustTable(t, result, "accounts")
	assert.Equal(t, []schema.Index{
		{Name: "accounts_email_key", Columns: []string{"email"}, IsUnique: true},
	}, accounts.Indexes)
	assert.Equal(t, []string{"id"}, accounts.PrimaryKey())
}

func TestParseKeywordNamedColumns(t *testing.T) {
	sql := "CREATE TABLE flags (id INT PRIMARY KEY, exclude BOOLEAN NOT NULL, spatial BOOLEAN, fulltext TEXT, key VARCHAR(20), name TEXT);"
	result := Parse(sql)
	assert.Empty(t, result.Errors)

	flags := mustTable(t, result, "flags")
	var names []string
	for _, col := range flags.Columns {
		names = append(names, col.Name)
	}
	assert.Equal(t, []string{"id", "exclude", "spatial", "fulltext", "key", "name"}, names)
	assert.Empty(t, flags.Indexes)
	assert.Equal(t, "BOOLEAN", mustColumn(t, flags, "exclude").Type)
}

func TestParseIndexKeywordClauses(t *testing.T) {
	sql := `CREATE TABLE docs (
  id INT,
  body TEXT,
  geo GEOMETRY,
  FULLTEXT KEY ft_body (body),
  SPATIAL INDEX (geo),
  EXCLUDE USING gist (id WITH =),
  CONSTRAINT no_overlap EXCLUDE (id WITH =)
);`
	result := NewParser(Options{ReportUnrecognized: true}).Parse(sql)
	assert.Empty(t, result.Errors)

	docs := mustTable(t, result, "docs")
	require.Len(t, docs.Columns, 3)
	assert.Equal(t, []schema.Index{
		{Name: "ft_body", Columns: []string{"body"}},
		{Columns: []string{"geo"}},
	}, docs.Indexes)
}

func TestParseMissingSemicolon(t *testing.T) {
	sql := "CREATE TABLE users (id INT PRIMARY KEY)"

	t.Run("not captured by default", func(t *testing.T) {
		result := Parse(sql)
		assert.Empty(t, result.Tables)
		assert.Equal(t, []string{
			`Skipped CREATE TABLE "users" (line 1): missing terminating semicolon`,
			NoTablesMessage,
		}, result.Errors)
	})

	t.Run("captured when allowed", func(t *testing.T) {
		result := NewParser(Options{AllowUnterminated: true}).Parse(sql)
		assert.Empty(t, result.Errors)
		require.Len(t, result.Tables, 1)
		assert.Equal(t, "users", result.Tables[0].Name)
	})
}

func TestParseComments(t *testing.T) {
	sql := `-- users table
/* block
   comment */
CREATE TABLE users ( -- the key
    id INT PRIMARY KEY, /* inline */
    -- commented_out INT,
    note TEXT DEFAULT '-- keep me'
);`
	result := Parse(sql)
	assert.Empty(t, result.Errors)
	users := mustTable(t, result, "users")
	require.Len(t, users.Columns, 2)
	assert.Equal(t, strPtr("-- keep me"), users.Columns[1].DefaultValue)
}

func TestParseUnrecognizedClauses(t *testing.T) {
	sql := "CREATE TABLE t (id INT, 42, (x));"

	t.Run("silent by default", func(t *testing.T) {
		result := Parse(sql)
		assert.Empty(t, result.Errors)
	})

	t.Run("reported when enabled", func(t *testing.T) {
		result := NewParser(Options{ReportUnrecognized: true}).Parse(sql)
		assert.Equal(t, []string{`Skipped unrecognized clause in table "t": 42`, `Skipped unrecognized clause in table "t": (x)`}, result.Errors)
	})
}

func TestParseDuplicates(t *testing.T) {
	sql := `CREATE TABLE a (id INT, id TEXT);
CREATE TABLE a (other INT);`
	result := Parse(sql)

	require.Len(t, result.Tables, 1)
	require.Len(t, result.Tables[0].Columns, 1)
	assert.Equal(t, "INT", result.Tables[0].Columns[0].Type)
	assert.Equal(t, []string{
		`Duplicate column "id" in table "a" ignored`,
		`Duplicate table "a" ignored`,
	}, result.Errors)
}

func TestParseStatementIsolation(t *testing.T) {
	sql := "CREATE TABLE broken (id INT, name VARCHAR(10);\nCREATE TABLE ok (id INT);"
	result := Parse(sql)

	require.Len(t, result.Tables, 1)
	assert.Equal(t, "ok", result.Tables[0].Name)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `Error parsing table: unterminated column list for table "broken" (line 1)`, result.Errors[0])
}

type checkerFunc func(table, text string) error

func (f checkerFunc) CheckStatement(table, text string) error { return f(table, text) }

func TestParseChecker(t *testing.T) {
	var checked []string
	checker := checkerFunc(func(table, text string) error {
		checked = append(checked, text)
		if table == "bad" {
			return errors.New("syntax error at position 10")
		}
		return nil
	})

	result := NewParser(Options{Checker: checker}).Parse("CREATE TABLE good (id INT);\nCREATE TABLE bad (id INT);")

	assert.Equal(t, []string{"CREATE TABLE good (id INT);", "CREATE TABLE bad (id INT);"}, checked)
	assert.Len(t, result.Tables, 2)
	assert.Equal(t, []string{`Syntax check failed for table "bad": syntax error at position 10`}, result.Errors)
}

func TestParsePanickingChecker(t *testing.T) {
	checker := checkerFunc(func(table, text string) error {
		if table == "a" {
			panic("boom")
		}
		return nil
	})
	result := NewParser(Options{Checker: checker}).Parse(
		"CREATE TABLE a (id INT);\nCREATE TABLE b (id INT);\nCREATE TABLE c (id INT);")

	require.Len(t, result.Tables, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, name, result.Tables[i].Name)
	}
	assert.Equal(t, []string{`Syntax check failed for table "a": boom`}, result.Errors)
}

func TestRecoveredAddsNoTablesMessage(t *testing.T) {
	result := schema.ParseResult{Tables: []schema.Table{}, Errors: []string{}}
	recovered(&result, "boom")
	assert.Equal(t, []string{"Error parsing SQL: boom", NoTablesMessage}, result.Errors)

	result = schema.ParseResult{Tables: []schema.Table{{Name: "t"}}, Errors: []string{}}
	recovered(&result, "boom")
	assert.Equal(t, []string{"Error parsing SQL: boom"}, result.Errors)
}

func TestParseIdempotent(t *testing.T) {
	sql := blogSchema
	first := Parse(sql)
	second := Parse(sql)
	assert.Equal(t, first, second)
}

const blogSchema = `
CREATE TABLE users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(50) NOT NULL UNIQUE,
    email VARCHAR(255) NOT NULL UNIQUE,
    status VARCHAR(20) DEFAULT 'active',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE posts (
    id SERIAL PRIMARY KEY,
    author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title VARCHAR(200) NOT NULL,
    body TEXT,
    published BOOLEAN DEFAULT false
);

CREATE TABLE comments (
    id SERIAL PRIMARY KEY,
    post_id INTEGER NOT NULL,
    user_id INTEGER,
    parent_id INTEGER REFERENCES comments(id),
    content TEXT NOT NULL,
    FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
);

CREATE INDEX idx_posts_author ON posts(author_id);
`

func TestParseBlogSchema(t *testing.T) {
	result := Parse(blogSchema)
	assertInvariants(t, result)

	assert.Empty(t, result.Errors)
	require.Len(t, result.Tables, 3)
	assert.Equal(t, "users", result.Tables[0].Name)
	assert.Equal(t, "posts", result.Tables[1].Name)
	assert.Equal(t, "comments", result.Tables[2].Name)

	users := mustTable(t, result, "users")
	assert.Equal(t, strPtr("active"), mustColumn(t, users, "status").DefaultValue)
	assert.Equal(t, "TIMESTAMP WITH TIME ZONE", mustColumn(t, users, "created_at").Type)
	assert.Equal(t, []string{"UNIQUE", "NOT NULL"}, mustColumn(t, users, "username").Constraints)

	assert.Equal(t, []schema.Relationship{
		{FromTable: "posts", FromColumn: "author_id", ToTable: "users", ToColumn: "id", OnDelete: "CASCADE"},
		{FromTable: "comments", FromColumn: "parent_id", ToTable: "comments", ToColumn: "id"},
		{FromTable: "comments", FromColumn: "post_id", ToTable: "posts", ToColumn: "id", OnDelete: "CASCADE"},
		{FromTable: "comments", FromColumn: "user_id", ToTable: "users", ToColumn: "id", OnDelete: "SET NULL"},
	}, result.Relationships)

	comments := mustTable(t, result, "comments")
	assert.Len(t, comments.Columns, 5)
	assert.Len(t, result.RelationshipsTo("users"), 2)
	assert.Len(t, result.RelationshipsFrom("comments"), 3)
}

func TestParseMySQLDump(t *testing.T) {
	sql := "CREATE TABLE `wp_usermeta` (\n" +
		"  `umeta_id` bigint(20) unsigned NOT NULL AUTO_INCREMENT,\n" +
		"  `user_id` bigint(20) unsigned NOT NULL DEFAULT '0',\n" +
		"  `meta_key` varchar(255) COLLATE utf8mb4_unicode_ci DEFAULT NULL,\n" +
		"  `meta_value` longtext COLLATE utf8mb4_unicode_ci,\n" +
		"  PRIMARY KEY (`umeta_id`),\n" +
		"  KEY `user_id` (`user_id`),\n" +
		"  KEY `meta_key` (`meta_key`(191)),\n" +
		"  CONSTRAINT `fk_user` FOREIGN KEY (`user_id`) REFERENCES `wp_users` (`ID`) ON DELETE CASCADE ON UPDATE NO ACTION\n" +
		") ENGINE=InnoDB AUTO_INCREMENT=12 DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;"

	result := Parse(sql)
	assertInvariants(t, result)
	assert.Empty(t, result.Errors)

	table := mustTable(t, result, "wp_usermeta")
	require.Len(t, table.Columns, 4)
	assert.Len(t, table.Indexes, 2)

	id := mustColumn(t, table, "umeta_id")
	assert.Equal(t, "bigint(20) unsigned", id.Type)
	assert.Equal(t, []string{"PRIMARY KEY", "AUTO_INCREMENT", "NOT NULL"}, id.Constraints)

	userID := mustColumn(t, table, "user_id")
	assert.Equal(t, strPtr("0"), userID.DefaultValue)
	assert.Equal(t, &schema.Reference{Table: "wp_users", Column: "ID"}, userID.References)

	require.Len(t, result.Relationships, 1)
	assert.Equal(t, "CASCADE", result.Relationships[0].OnDelete)
	assert.Equal(t, "NO ACTION", result.Relationships[0].OnUpdate)
}

func TestParseQuotedIdentifiers(t *testing.T) {
	sql := `CREATE TABLE "Order Items" ("Item ID" INT PRIMARY KEY, "order" INT REFERENCES "Orders"("ID"));`
	result := Parse(sql)
	assertInvariants(t, result)

	table := mustTable(t, result, "Order Items")
	assert.Equal(t, "Item ID", table.Columns[0].Name)
	assert.Equal(t, &schema.Reference{Table: "Orders", Column: "ID"}, table.Columns[1].References)
}
