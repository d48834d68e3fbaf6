package bot

import (
	"context"
	"strconv"
	"sync"
	"time"

	"cardbot/application"
	"cardbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type voiceKey struct {
	guildID string
	userID  string
}

// voiceTracker remembers when members joined a voice channel
type voiceTracker struct {
	mu     sync.Mutex
	joined map[voiceKey]time.Time
	now    func() time.Time
}

func newVoiceTracker() *voiceTracker {
	return &voiceTracker{
		joined: make(map[voiceKey]time.Time),
		now:    time.Now,
	}
}

// join starts a session. Switching channels keeps the original start.
func (t *voiceTracker) join(guildID, userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := voiceKey{guildID, userID}
	if _, ok := t.joined[key]; !ok {
		t.joined[key] = t.now()
	}
}

// leave ends a session and returns the whole minutes spent in it
func (t *voiceTracker) leave(guildID, userID string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := voiceKey{guildID, userID}
	start, ok := t.joined[key]
	if !ok {
		return 0
	}
	delete(t.joined, key)
	return int64(t.now().Sub(start) / time.Minute)
}

// handleVoiceStateUpdate pays voice points when a member leaves voice chat
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.VoiceState == nil || v.GuildID == "" {
		return
	}
	if v.Member != nil && v.Member.User != nil && v.Member.User.Bot {
		return
	}

	wasIn := v.BeforeUpdate != nil && v.BeforeUpdate.ChannelID != ""
	isIn := v.ChannelID != ""

	switch {
	case isIn:
		b.voice.join(v.GuildID, v.UserID)
		return
	case !wasIn:
		return
	}

	minutes := b.voice.leave(v.GuildID, v.UserID)
	if minutes <= 0 {
		return
	}

	guildID, err := strconv.ParseInt(v.GuildID, 10, 64)
	if err != nil {
		return
	}
	userID, err := common.ParseUserID(v.UserID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var awarded int64
	err = b.runner.Run(ctx, guildID, func(svc *application.Services) error {
		awarded, err = svc.Settings.RecordVoice(ctx, userID, minutes)
		return err
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guildID": v.GuildID,
			"userID":  v.UserID,
			"minutes": minutes,
		}).Error("Failed to record voice time")
		return
	}

	if awarded > 0 {
		log.WithFields(log.Fields{
			"guildID": v.GuildID,
			"userID":  v.UserID,
			"minutes": minutes,
			"points":  awarded,
		}).Debug("Awarded voice reward")
	}
}
