package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(t *testing.T, seq []string, name string) int {
	t.Helper()
	for i, n := range seq {
		if n == name {
			return i
		}
	}
	t.Fatalf("%q not found in %v", name, seq)
	return -1
}

func TestDependencyOrderRespectsEdges(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("CTest", Registration{After: []string{"BTest"}}))
	require.NoError(t, r.Register("BTest", Registration{After: []string{"ATest"}}))
	require.NoError(t, r.Register("ETest", Registration{Before: []string{"ATest"}}))

	order, err := r.DependencyOrder()
	require.NoError(t, err)

	// Every name from any edge appears exactly once.
	assert.ElementsMatch(t, []string{"ATest", "BTest", "CTest", "ETest"}, order)

	// For every edge dependent -> prerequisite, the prerequisite comes first.
	assert.Less(t, indexOf(t, order, "BTest"), indexOf(t, order, "CTest"))
	assert.Less(t, indexOf(t, order, "ATest"), indexOf(t, order, "BTest"))
	assert.Less(t, indexOf(t, order, "ETest"), indexOf(t, order, "ATest"))
}

func TestDependencyOrderIsDeterministic(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("CTest", Registration{After: []string{"ATest", "BTest"}}))
	require.NoError(t, r.Register("DTest", Registration{After: []string{"ATest"}}))
	require.NoError(t, r.Register("BTest", Registration{Priority: intp(10), Before: []string{"DTest"}}))

	first, err := r.DependencyOrder()
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := r.DependencyOrder()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDependencyOrderLayerTieBreak(t *testing.T) {
	r := NewRegistry()
	// AaTest, BbTest and CcTest all depend only on RootTest, so they share a
	// layer; ordering within it is (priority, name) ascending.
	require.NoError(t, r.Register("CcTest", Registration{After: []string{"RootTest"}, Priority: intp(10)}))
	require.NoError(t, r.Register("BbTest", Registration{After: []string{"RootTest"}}))
	require.NoError(t, r.Register("AaTest", Registration{After: []string{"RootTest"}}))

	order, err := r.DependencyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"RootTest", "CcTest", "AaTest", "BbTest"}, order)
}

func TestDependencyOrderDetectsCycle(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("ATest", Registration{After: []string{"BTest"}}))
		require.NoError(t, r.Register("BTest", Registration{After: []string{"ATest"}}))
		_, err := r.DependencyOrder()
		assert.ErrorIs(t, err, ErrCyclicDependency)
	})

	t.Run("indirect via soft edge", func(t *testing.T) {
		// A soft-before B plus B hard-after A is fine; A soft-before B plus
		// A hard-after B is a cycle even though no single edge loops.
		r := NewRegistry()
		require.NoError(t, r.Register("ATest", Registration{Before: []string{"BTest"}}))
		require.NoError(t, r.Register("ATest", Registration{After: []string{"BTest"}}))
		_, err := r.DependencyOrder()
		require.ErrorIs(t, err, ErrCyclicDependency)
		assert.Contains(t, err.Error(), "ATest")
		assert.Contains(t, err.Error(), "BTest")
	})
}

func TestOrderTestsThreeTiers(t *testing.T) {
	// Scenario: A has priority 200, B declares itself before C, C has no
	// registration at all. Expected order: B, C, A.
	r := NewRegistry()
	require.NoError(t, r.Register("ATest", Registration{Priority: intp(200)}))
	require.NoError(t, r.Register("BTest", Registration{Before: []string{"CTest"}}))

	order, err := r.OrderTests([]string{"ATest", "BTest", "CTest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"BTest", "CTest", "ATest"}, order)
}

func TestOrderTestsIndependentsByPriority(t *testing.T) {
	// Two independent tests with no edges: the priority-10 one always runs
	// before the priority-90 one regardless of declaration order.
	r := NewRegistry()
	require.NoError(t, r.Register("SlowTest", Registration{Priority: intp(90)}))
	require.NoError(t, r.Register("QuickTest", Registration{Priority: intp(10)}))

	order, err := r.OrderTests([]string{"SlowTest", "QuickTest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"QuickTest", "SlowTest"}, order)
}

func TestOrderTestsIsPermutation(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("CTest", Registration{After: []string{"BTest"}}))
	require.NoError(t, r.Register("BTest", Registration{After: []string{"MissingTest"}}))
	require.NoError(t, r.Register("ZTest", Registration{Priority: intp(99)}))

	selected := []string{"ETest", "CTest", "ZTest", "BTest", "DTest"}
	order, err := r.OrderTests(selected)
	require.NoError(t, err)

	// Nothing added (MissingTest stays out) and nothing dropped.
	assert.ElementsMatch(t, selected, order)

	// Chain block keeps dependency order, independents flank it.
	assert.Less(t, indexOf(t, order, "BTest"), indexOf(t, order, "CTest"))
	assert.Equal(t, "ZTest", order[len(order)-1])
	assert.Equal(t, []string{"DTest", "ETest"}, order[:2])
}

func TestExpandHardAddsTransitivePrerequisites(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("CTest", Registration{After: []string{"BTest"}}))
	require.NoError(t, r.Register("BTest", Registration{After: []string{"ATest"}}))
	require.NoError(t, r.Register("BTest", Registration{Before: []string{"SoftTest"}}))

	expanded := r.ExpandHard([]string{"CTest"})
	assert.ElementsMatch(t, []string{"CTest", "BTest", "ATest"}, expanded)

	// Soft prerequisites are never pulled in.
	assert.NotContains(t, expanded, "SoftTest")

	// Already-selected prerequisites are not duplicated.
	expanded = r.ExpandHard([]string{"BTest", "CTest"})
	assert.ElementsMatch(t, []string{"BTest", "CTest", "ATest"}, expanded)
}
