package trade

import (
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles peer-to-peer card trades
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new trade feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand handles /trade subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	switch sub {
	case "offer":
		f.handleOffer(s, i, opts)
	case "history":
		f.handleHistory(s, i)
	default:
		log.Warnf("Unknown trade subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// HandleInteraction handles the accept and deny buttons of an offer
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleButton(s, i, i.MessageComponentData().CustomID)
}

// MarkExpired rewrites an expired offer's message and removes its buttons
func (f *Feature) MarkExpired(s *discordgo.Session, offer *entities.TradeOffer) error {
	if offer.ChannelID == "" || offer.MessageID == "" {
		return nil
	}

	components := []discordgo.MessageComponent{}
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         offer.MessageID,
		Channel:    offer.ChannelID,
		Embeds:     &[]*discordgo.MessageEmbed{offerClosedEmbed(offer, "⌛ Trade Expired", "This offer expired without a response.", common.ColorWarning)},
		Components: &components,
	})
	return err
}
