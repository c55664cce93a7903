package workflow_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/newsdeskhq/newsdesk/internal/workflow"
	"github.com/stretchr/testify/assert"
)

func TestWorkspaceSelection(t *testing.T) {
	workspace := workflow.NewWorkspace("politic")
	assert.Equal(t, "politic", workspace.DeskID())
	assert.Empty(t, workspace.Selected())

	workspace.Select("42")
	assert.Equal(t, "42", workspace.Selected())

	// Deselecting another item leaves the selection untouched.
	workspace.Deselect("51")
	assert.Equal(t, "42", workspace.Selected())

	workspace.Deselect("42")
	assert.Empty(t, workspace.Selected())
}

func TestWorkspaceOnChange(t *testing.T) {
	workspace := workflow.NewWorkspace("politic")

	var notified int32
	workspace.OnChange(func() {
		atomic.AddInt32(&notified, 1)
	})

	// A burst of changes collapses into a single notification.
	workspace.Select("42")
	workspace.Select("51")
	workspace.Deselect("51")

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&notified) == 1
	}, 2*time.Second, 50*time.Millisecond)
}
