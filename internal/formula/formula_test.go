package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBlock(t *testing.T) {
	t.Run("keeps derived indices in sync", func(t *testing.T) {
		f := New()
		require.NoError(t, f.AddBlock(Exists, []Variable{1}))
		require.NoError(t, f.AddBlock(ForAll, []Variable{2, 3}))
		require.NoError(t, f.AddBlock(Exists, []Variable{4}))

		assert.Equal(t, Exists, f.VarQuantifier()[1])
		assert.Equal(t, ForAll, f.VarQuantifier()[2])
		assert.Equal(t, ForAll, f.VarQuantifier()[3])
		assert.Equal(t, Exists, f.VarQuantifier()[4])

		assert.Equal(t, 0, f.VarBlock()[1])
		assert.Equal(t, 1, f.VarBlock()[2])
		assert.Equal(t, 1, f.VarBlock()[3])
		assert.Equal(t, 2, f.VarBlock()[4])
	})

	t.Run("rejects a variable quantified twice", func(t *testing.T) {
		f := New()
		require.NoError(t, f.AddBlock(Exists, []Variable{1, 2}))
		assert.Error(t, f.AddBlock(ForAll, []Variable{2}))
	})

	t.Run("rejects an empty block", func(t *testing.T) {
		f := New()
		assert.Error(t, f.AddBlock(Exists, nil))
	})

	t.Run("rejects non-positive variables", func(t *testing.T) {
		f := New()
		assert.Error(t, f.AddBlock(Exists, []Variable{0}))
		assert.Error(t, f.AddBlock(ForAll, []Variable{-3}))
	})
}

func TestLiteral(t *testing.T) {
	lit := NewLiteral(7, false)

	assert.Equal(t, NewLiteral(7, true), lit.Complement())
	assert.Equal(t, lit, lit.Complement().Complement())
	assert.NotEqual(t, lit, NewLiteral(8, false))

	assert.Equal(t, "x7", lit.String())
	assert.Equal(t, "¬x7", lit.Complement().String())
}

func TestClause(t *testing.T) {
	clause := Clause{NewLiteral(1, false), NewLiteral(2, true)}

	t.Run("contains matches variable and polarity", func(t *testing.T) {
		assert.True(t, clause.Contains(NewLiteral(1, false)))
		assert.False(t, clause.Contains(NewLiteral(1, true)))
		assert.False(t, clause.Contains(NewLiteral(3, false)))
	})

	t.Run("tautology detection", func(t *testing.T) {
		assert.False(t, clause.Tautology())
		assert.True(t, Clause{NewLiteral(1, false), NewLiteral(1, true)}.Tautology())
	})

	t.Run("copy is independent", func(t *testing.T) {
		copied := clause.Copy()
		copied[0] = NewLiteral(9, false)
		assert.Equal(t, NewLiteral(1, false), clause[0])
	})

	t.Run("rendering", func(t *testing.T) {
		assert.Equal(t, "(x1 ∨ ¬x2)", clause.String())
	})
}

func TestAssignment(t *testing.T) {
	t.Run("assigning the same value twice is a no-op", func(t *testing.T) {
		assignment := Assignment{}
		assignment.Assign(1, true)
		assert.NotPanics(t, func() { assignment.Assign(1, true) })
	})

	t.Run("assigning a conflicting value panics", func(t *testing.T) {
		assignment := Assignment{}
		assignment.Assign(1, true)
		assert.Panics(t, func() { assignment.Assign(1, false) })
	})

	t.Run("satisfies", func(t *testing.T) {
		assignment := Assignment{1: true, 2: false}

		satisfied, assigned := assignment.Satisfies(NewLiteral(1, false))
		assert.True(t, assigned)
		assert.True(t, satisfied)

		satisfied, assigned = assignment.Satisfies(NewLiteral(2, false))
		assert.True(t, assigned)
		assert.False(t, satisfied)

		_, assigned = assignment.Satisfies(NewLiteral(3, false))
		assert.False(t, assigned)
	})

	t.Run("copy is independent", func(t *testing.T) {
		assignment := Assignment{1: true}
		copied := assignment.Copy()
		copied.Assign(2, false)
		assert.False(t, assignment.Assigned(2))
	})
}

func TestFormulaString(t *testing.T) {
	f := New()
	require.NoError(t, f.AddBlock(ForAll, []Variable{1}))
	require.NoError(t, f.AddBlock(Exists, []Variable{2}))
	f.AddClause(Clause{NewLiteral(1, false), NewLiteral(2, false)})
	f.AddClause(Clause{NewLiteral(1, true), NewLiteral(2, true)})

	assert.Equal(t, "∀ x1 ∃ x2 (x1 ∨ x2) ∧ (¬x1 ∨ ¬x2)", f.String())
}
