package burn

import (
	"fmt"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

func burnEmbed(result *entities.BurnResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔥 Card Burned",
		Description: fmt.Sprintf("Burned %s for **%s**.", common.FormatCardLine(result.Card), common.FormatPoints(result.PointsEarned)),
		Color:       common.ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "New Balance", Value: common.FormatBalance(result.NewBalance), Inline: true},
			{Name: "Copies Left", Value: fmt.Sprintf("%d", result.Remaining), Inline: true},
		},
	}
}
