package steps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	// Verify all expected steps are in the registry
	expectedSteps := []string{StepLoadRecipes, StepBuildCandidates, StepSolve}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
	assert.Len(t, StepRegistry, len(expectedSteps))
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryIngestion:  {StepLoadRecipes},
		CategoryCandidates: {StepBuildCandidates},
		CategorySelection:  {StepSolve},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			def, ok := StepRegistry[stepName]
			require.True(t, ok)
			assert.Equal(t, category, def.Category, "Step %s should be in category %s", stepName, category)
		}
	}
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{
		Step:                "test_step",
		MissingDependencies: []string{"dep1", "dep2"},
	}

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing dependencies")
	assert.Equal(t, "test_step", err.Step)
	assert.Equal(t, []string{"dep1", "dep2"}, err.MissingDependencies)
}

func TestValidateDependencies_UnknownStep(t *testing.T) {
	err := NewTracker().ValidateDependencies("unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestTracker_Lifecycle(t *testing.T) {
	tracker := NewTracker()

	assert.Equal(t, StatusPending, tracker.Status(StepSolve))
	assert.Equal(t, []string{StepLoadRecipes}, tracker.AvailableSteps())
	assert.Equal(t, []string{StepBuildCandidates, StepSolve}, tracker.BlockedSteps())

	err := tracker.Start(StepSolve)
	var depErr *DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, []string{StepBuildCandidates}, depErr.MissingDependencies)

	require.NoError(t, tracker.Start(StepLoadRecipes))
	assert.Equal(t, StatusInProgress, tracker.Status(StepLoadRecipes))
	assert.Error(t, tracker.Start(StepLoadRecipes))
	tracker.Complete(StepLoadRecipes)

	assert.Equal(t, StatusCompleted, tracker.Status(StepLoadRecipes))
	assert.GreaterOrEqual(t, tracker.Duration(StepLoadRecipes).Nanoseconds(), int64(0))
	assert.Equal(t, []string{StepBuildCandidates}, tracker.AvailableSteps())
	assert.Equal(t, []string{StepSolve}, tracker.BlockedSteps())
}

func TestTracker_FailedStepCanRestart(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Start(StepLoadRecipes))
	tracker.Fail(StepLoadRecipes)
	assert.Equal(t, StatusFailed, tracker.Status(StepLoadRecipes))
	assert.Equal(t, []string{StepLoadRecipes}, tracker.AvailableSteps())

	require.NoError(t, tracker.Start(StepLoadRecipes))
}
