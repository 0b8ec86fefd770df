package workflows_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/scriptorium/curation-reconciler/internal/domain"
	"github.com/scriptorium/curation-reconciler/internal/logger"
	"github.com/scriptorium/curation-reconciler/internal/mocks"
	"github.com/scriptorium/curation-reconciler/internal/workflows"
)

// VerifyPaymentWorkflowTestSuite is the test suite for the payment
// verification workflow
type VerifyPaymentWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env      *testsuite.TestWorkflowEnvironment
	ctrl     *gomock.Controller
	executor *mocks.MockExecutor
	worker   workflows.Worker
}

// SetupTest is called before each test
func (s *VerifyPaymentWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockExecutor(s.ctrl)
	s.worker = workflows.NewWorker(s.executor, workflows.WorkerConfig{
		VerifyDelay:           30 * time.Second,
		VerifyInitialInterval: 20 * time.Second,
		VerifyMaxAttempts:     8,
	})
}

// TearDownTest is called after each test
func (s *VerifyPaymentWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

// TestVerifyPaymentWorkflowTestSuite runs the test suite
func TestVerifyPaymentWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(VerifyPaymentWorkflowTestSuite))
}

func (s *VerifyPaymentWorkflowTestSuite) TestVerifyDonationPayment_Success() {
	transactionID := uuid.New()

	s.env.OnActivity(s.executor.VerifyDonationPayment, mock.Anything, transactionID).Return(nil)

	s.env.ExecuteWorkflow(s.worker.VerifyDonationPayment, transactionID)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *VerifyPaymentWorkflowTestSuite) TestVerifyDonationPayment_RetriesWhileUnmined() {
	transactionID := uuid.New()

	// Unmined twice, then verified on the third attempt
	unmined := errors.New("transaction receipt not available")
	s.env.OnActivity(s.executor.VerifyDonationPayment, mock.Anything, transactionID).Return(unmined).Times(2)
	s.env.OnActivity(s.executor.VerifyDonationPayment, mock.Anything, transactionID).Return(nil).Once()

	s.env.ExecuteWorkflow(s.worker.VerifyDonationPayment, transactionID)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *VerifyPaymentWorkflowTestSuite) TestVerifyDonationPayment_ExhaustsRetryBudget() {
	transactionID := uuid.New()

	unmined := errors.New("transaction receipt not available")
	s.env.OnActivity(s.executor.VerifyDonationPayment, mock.Anything, transactionID).Return(unmined)

	s.env.ExecuteWorkflow(s.worker.VerifyDonationPayment, transactionID)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}

func (s *VerifyPaymentWorkflowTestSuite) TestVerifyDonationPayment_NonRetryableStopsImmediately() {
	transactionID := uuid.New()

	s.env.OnActivity(s.executor.VerifyDonationPayment, mock.Anything, transactionID).
		Return(temporal.NewNonRetryableApplicationError(
			"transaction not found",
			"TransactionNotFound",
			domain.ErrTransactionNotFound,
		)).
		Once()

	s.env.ExecuteWorkflow(s.worker.VerifyDonationPayment, transactionID)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}
