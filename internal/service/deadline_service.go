package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/mailer"
	"github.com/cristianccgg/letranido-backend/internal/model"
	"github.com/cristianccgg/letranido-backend/internal/repository"
)

// DeadlineService detects contests whose submission window just closed
// and ensures the voting-started notification goes out exactly once per
// contest.
type DeadlineService interface {
	// CheckDeadlines runs one scan. A failing contest is recorded in its
	// result entry and never aborts the rest; retry comes from the next
	// invocation, guarded by the email-log claim.
	CheckDeadlines(ctx context.Context) (*dto.DeadlineCheckReport, error)
}

type deadlineService struct {
	repo       *repository.Repository
	dispatcher mailer.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewDeadlineService creates the DeadlineService.
func NewDeadlineService(repo *repository.Repository, dispatcher mailer.Dispatcher, logger *zap.Logger) DeadlineService {
	return &deadlineService{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *deadlineService) CheckDeadlines(ctx context.Context) (*dto.DeadlineCheckReport, error) {
	now := s.now()

	contests, err := s.repo.Contest.ListInVotingWindow(ctx, now)
	if err != nil {
		// A scan failure aborts the whole invocation.
		s.logger.Error("scanning contests for voting transition failed", zap.Error(err))
		return nil, err
	}

	report := &dto.DeadlineCheckReport{
		Success:   true,
		CheckedAt: now,
		Total:     len(contests),
		Results:   make([]dto.ContestCheckResult, 0, len(contests)),
	}

	if len(contests) == 0 {
		report.Message = "No contests entering voting"
		return report, nil
	}

	for _, contest := range contests {
		result := s.notifyVotingStarted(ctx, &contest)
		if result.Success {
			report.Sent++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, result)
	}

	report.Message = "Deadline check completed"
	return report, nil
}

// notifyVotingStarted claims the email-log row and, when this run owns
// the claim, calls the dispatcher. The claim is released on a failed
// dispatch so the next run retries. Inserting before sending closes the
// check-then-act race between overlapping runs.
func (s *deadlineService) notifyVotingStarted(ctx context.Context, contest *model.Contest) dto.ContestCheckResult {
	result := dto.ContestCheckResult{
		ContestID:    contest.ContestID,
		ContestTitle: contest.Title,
	}

	claimed, err := s.repo.EmailLog.ClaimSend(ctx, contest.ContestID, model.EmailTypeVotingStarted)
	if err != nil {
		s.logger.Error("claiming voting-started send failed",
			zap.String("contest_id", contest.ContestID),
			zap.Error(err),
		)
		result.Error = err.Error()
		return result
	}

	if !claimed {
		result.Success = true
		result.Message = "Email already sent"
		return result
	}

	if err := s.dispatcher.SendContestEmail(ctx, model.EmailTypeVotingStarted, contest.ContestID); err != nil {
		s.logger.Error("dispatching voting-started email failed",
			zap.String("contest_id", contest.ContestID),
			zap.String("title", contest.Title),
			zap.Error(err),
		)
		if relErr := s.repo.EmailLog.ReleaseClaim(ctx, contest.ContestID, model.EmailTypeVotingStarted); relErr != nil {
			// The claim sticks until manually cleared; better a missed
			// retry than a duplicate send.
			s.logger.Error("releasing failed claim failed",
				zap.String("contest_id", contest.ContestID),
				zap.Error(relErr),
			)
		}
		result.Error = err.Error()
		return result
	}

	s.logger.Info("voting-started email dispatched",
		zap.String("contest_id", contest.ContestID),
		zap.String("title", contest.Title),
	)
	result.Success = true
	result.Message = "Email sent"
	return result
}
