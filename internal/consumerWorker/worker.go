package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"weddingdesk/internal/dto"
	"weddingdesk/internal/mailer"
	"weddingdesk/internal/rabbit"
	"weddingdesk/internal/repo"
)

// Reader consumes delayed contribution-expiry messages: when the payment
// timeout lapses without a confirmation, the contribution is marked expired
// and the contributor is notified.
type Reader struct {
	RMQ    *rabbit.Client
	repo   repo.Repository
	mail   mailer.Config
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, repo repo.Repository, mail mailer.Config) *Reader {
	return &Reader{
		RMQ:  rmq,
		repo: repo,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("contribution expiry reader started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.ContributionOperateMessage
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("Failed to unmarshal message: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Int64("contribution_id", msg.ContributionID).
				Int64("product_id", msg.ProductID).
				Msg("received expiry message")

			expired, err := r.repo.ExpireIfPendingTx(cctx, msg.ContributionID)
			if err != nil {
				zlog.Logger.Error().
					Err(err).
					Int64("contribution_id", msg.ContributionID).
					Msg("Failed to expire contribution (DB operation)")
				return err
			}

			if !expired {
				zlog.Logger.Info().
					Int64("contribution_id", msg.ContributionID).
					Msg("contribution already paid or expired, skipping email")
				return nil
			}

			contribution, err := r.repo.GetContributionByID(ctx, msg.ContributionID)
			if err != nil {
				zlog.Logger.Error().
					Err(err).
					Int64("contribution_id", msg.ContributionID).
					Msg("Failed to get contribution from DB in worker")
				return nil
			}

			if err := mailer.SendContributionEmail(
				&zlog.Logger,
				r.mail,
				"expired",
				contribution.Email,
				contribution.ContributorName,
				0,
			); err != nil {
				zlog.Logger.Warn().
					Err(err).
					Msg("Failed to send notification e-mail")
			} else {
				zlog.Logger.Info().
					Str("email", contribution.Email).
					Int64("contribution_id", msg.ContributionID).
					Msg("expiry email sent")
			}

			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("contribution expiry reader stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
