package bot

import (
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// offerSweepSchedule runs the trade offer expiry sweep once a minute
const offerSweepSchedule = "* * * * *"

// startWorkers schedules the background jobs and starts the scheduler
func (b *Bot) startWorkers() (*cron.Cron, error) {
	logger := cron.PrintfLogger(log.StandardLogger())
	scheduler := cron.New(cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	))

	if _, err := scheduler.AddFunc(offerSweepSchedule, b.sweepExpiredOffers); err != nil {
		return nil, fmt.Errorf("failed to schedule offer sweep: %w", err)
	}

	scheduler.Start()
	return scheduler, nil
}

// sweepExpiredOffers drops offers past their expiry and marks their messages as expired
func (b *Bot) sweepExpiredOffers() {
	if b.offers == nil {
		return
	}

	expired := b.offers.Expire()
	if len(expired) == 0 {
		return
	}

	log.WithField("count", len(expired)).Info("Expired pending trade offers")
	for _, offer := range expired {
		if err := b.trade.MarkExpired(b.session, offer); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"offerID":   offer.ID,
				"channelID": offer.ChannelID,
				"messageID": offer.MessageID,
			}).Warn("Failed to update expired trade offer message")
		}
	}
}
