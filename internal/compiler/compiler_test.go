package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/mdschema/internal/testutil"
	"github.com/leapstack-labs/mdschema/pkg/schema"
)

const shopDoc = `---
namespace: Shop
---

## BaseEntity::abstract
- Id: int @primary_key
- CreatedAt: datetime

## User : BaseEntity
- Email: string(100) @unique

## Order : BaseEntity
- UserId: int @reference(User)
- Status: enum

## Follow : BaseEntity
- FollowerId: int @reference(User)
- FollowingId: int @reference(User)

## OrderStatus::enum
- Open = 1
- Closed = 2
`

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	return New(Config{Logger: testutil.NewTestLogger(t)})
}

func TestCompile(t *testing.T) {
	res := newTestCompiler(t).Compile("shop", shopDoc)
	require.False(t, res.Failed(), "compile failed: %v", res.Err)
	require.NotNil(t, res.Document)
	assert.NotEmpty(t, res.RunID)

	doc := res.Document
	assert.True(t, doc.Frozen())
	assert.Equal(t, "Shop", doc.Namespace)
	assert.Len(t, doc.Models, 4)
	assert.Len(t, doc.NonAbstractModels(), 3)

	// Inherited fields are flattened onto every descendant.
	user := doc.ModelByName("User")
	require.NotNil(t, user)
	assert.NotNil(t, user.FieldByName("Id"))
	assert.True(t, user.FieldByName("Id").Inherited)

	// Enum resolution lands on the declared enum.
	order := doc.ModelByName("Order")
	assert.Equal(t, "OrderStatus", order.FieldByName("Status").EnumType)

	// Both Follow references cascade onto User: one direct-edge conflict.
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "User", res.Conflicts[0].TargetModel)
	assert.Equal(t, res.Conflicts, doc.Conflicts)

	var conflictDiag bool
	for _, d := range res.Diagnostics {
		if d.Code == "cascade-conflict" {
			conflictDiag = true
		}
	}
	assert.True(t, conflictDiag, "conflict should surface as a diagnostic")
}

func TestCompileIsIdempotent(t *testing.T) {
	c := newTestCompiler(t)

	first := c.Compile("shop", shopDoc)
	second := c.Compile("shop", shopDoc)
	require.False(t, first.Failed())
	require.False(t, second.Failed())

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, len(first.Diagnostics), len(second.Diagnostics))
	assert.Equal(t, first.Document.ModelNames(), second.Document.ModelNames())

	u1 := first.Document.ModelByName("User")
	u2 := second.Document.ModelByName("User")
	require.Equal(t, len(u1.Fields), len(u2.Fields))
	for i := range u1.Fields {
		assert.Equal(t, u1.Fields[i].Name, u2.Fields[i].Name)
	}
}

func TestCompileParseFailure(t *testing.T) {
	res := newTestCompiler(t).Compile("bad", "## Order\n- Total: money @computed(SUM(Price\n")
	require.True(t, res.Failed())
	assert.Nil(t, res.Document)
	assert.Contains(t, res.Err.Error(), "parse")
}

func TestCompileSemanticFailure(t *testing.T) {
	res := newTestCompiler(t).Compile("bad", "## Order\n- UserId: int @reference(Ghost)\n")
	require.True(t, res.Failed())

	var semErr *schema.SemanticError
	require.ErrorAs(t, res.Err, &semErr)
	assert.Equal(t, "Order", semErr.Model)
}

func TestCompileAllIsolatesFailures(t *testing.T) {
	c := newTestCompiler(t)

	results := c.CompileAll(context.Background(), map[string]string{
		"broken": "## Order\n- UserId: int @reference(Ghost)\n",
		"shop":   shopDoc,
		"tiny":   "## Thing\n- Id: int @primary_key\n",
	})
	require.Len(t, results, 3)

	// Sorted by name, failures carried per result.
	assert.Equal(t, "broken", results[0].Name)
	assert.True(t, results[0].Failed())
	assert.Equal(t, "shop", results[1].Name)
	assert.False(t, results[1].Failed())
	assert.Equal(t, "tiny", results[2].Name)
	assert.False(t, results[2].Failed())
}

func TestCompileAllWithConcurrencyLimit(t *testing.T) {
	c := New(Config{Logger: testutil.NewTestLogger(t), Concurrency: 1})

	sources := map[string]string{
		"a": "## A\n- Id: int @primary_key\n",
		"b": "## B\n- Id: int @primary_key\n",
	}
	results := c.CompileAll(context.Background(), sources)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Failed())
	}
}
