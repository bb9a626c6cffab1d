package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestRegisterRejectsEmptyRegistration(t *testing.T) {
	r := NewRegistry()
	err := r.Register("UserTest", Registration{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyRegistration)
}

func TestRegisterRejectsEmptyTarget(t *testing.T) {
	r := NewRegistry()
	err := r.Register("", Registration{After: []string{"BootTest"}})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestRegisterRejectsSelfDependency(t *testing.T) {
	tests := []struct {
		name string
		reg  Registration
	}{
		{"self in after", Registration{After: []string{"LoopTest"}}},
		{"self in before", Registration{Before: []string{"LoopTest"}}},
		{"self among others", Registration{After: []string{"OtherTest", "LoopTest"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register("LoopTest", tt.reg)
			assert.ErrorIs(t, err, ErrSelfDependency)
		})
	}
}

func TestRegisterRejectsEmptyDependencyName(t *testing.T) {
	r := NewRegistry()
	err := r.Register("UserTest", Registration{After: []string{""}})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestRegisterPriorities(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, DefaultPriority, r.Priority("UnknownTest"))

	require.NoError(t, r.Register("SmokeTest", Registration{Priority: intp(10)}))
	assert.Equal(t, 10, r.Priority("SmokeTest"))

	// A later registration overwrites the stored priority.
	require.NoError(t, r.Register("SmokeTest", Registration{Priority: intp(90)}))
	assert.Equal(t, 90, r.Priority("SmokeTest"))

	// Registering only dependencies keeps the priority untouched.
	require.NoError(t, r.Register("SmokeTest", Registration{After: []string{"BootTest"}}))
	assert.Equal(t, 90, r.Priority("SmokeTest"))
}

func TestRegisterEdges(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("CheckoutTest", Registration{
		After:  []string{"CartTest", "AuthTest"},
		Before: []string{"ReportTest"},
	}))

	// after -> hard prerequisites of the registered test
	assert.Equal(t, []string{"AuthTest", "CartTest"}, r.HardDependencies("CheckoutTest"))

	// before -> the registered test becomes a soft prerequisite of the target
	assert.Empty(t, r.HardDependencies("ReportTest"))
	assert.Equal(t, []string{"CheckoutTest"}, r.Dependencies("ReportTest"))

	assert.Equal(t, []string{"AuthTest", "CartTest"}, r.Dependencies("CheckoutTest"))
	assert.Empty(t, r.Dependencies("CartTest"))
}

func TestGraphMergesHardAndSoft(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("CheckoutTest", Registration{After: []string{"CartTest"}}))
	require.NoError(t, r.Register("CartTest", Registration{Before: []string{"ReportTest"}}))

	graph := r.Graph()
	_, ok := graph["CheckoutTest"]["CartTest"]
	assert.True(t, ok, "hard edge missing from combined graph")
	_, ok = graph["ReportTest"]["CartTest"]
	assert.True(t, ok, "soft edge missing from combined graph")

	// The copy is detached from the registry.
	delete(graph, "CheckoutTest")
	assert.Equal(t, []string{"CartTest"}, r.HardDependencies("CheckoutTest"))
}
