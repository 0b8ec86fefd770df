package workflows_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"

	"github.com/scriptorium/curation-reconciler/internal/logger"
	"github.com/scriptorium/curation-reconciler/internal/mocks"
	"github.com/scriptorium/curation-reconciler/internal/workflows"
)

// SyncEventsWorkflowTestSuite is the test suite for the synchronizer workflow
type SyncEventsWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env      *testsuite.TestWorkflowEnvironment
	ctrl     *gomock.Controller
	executor *mocks.MockExecutor
	worker   workflows.Worker
}

// SetupTest is called before each test
func (s *SyncEventsWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockExecutor(s.ctrl)
	s.worker = workflows.NewWorker(s.executor, workflows.DefaultWorkerConfig())
}

// TearDownTest is called after each test
func (s *SyncEventsWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

// TestSyncEventsWorkflowTestSuite runs the test suite
func TestSyncEventsWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(SyncEventsWorkflowTestSuite))
}

func (s *SyncEventsWorkflowTestSuite) TestSyncCurationEvents_Success() {
	s.env.OnActivity(s.executor.SyncCurationEvents, mock.Anything).Return(12, nil)

	s.env.ExecuteWorkflow(s.worker.SyncCurationEvents)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *SyncEventsWorkflowTestSuite) TestSyncCurationEvents_ActivityError() {
	s.env.OnActivity(s.executor.SyncCurationEvents, mock.Anything).
		Return(0, errors.New("failed to filter curation events: connection refused"))

	s.env.ExecuteWorkflow(s.worker.SyncCurationEvents)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}
