package lottery

import (
	"fmt"
	"strings"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

var ticketRange = fmt.Sprintf("%d-%d", entities.MinTicketNumber, entities.MaxTicketNumber)

func prizeLabel(l *entities.Lottery, card *entities.Card) string {
	if l.IsCardPrize() && card != nil {
		return common.FormatCardLine(card)
	}
	return fmt.Sprintf("Points pot (%d%% to the winner)", entities.WinnerSharePercent)
}

func createdEmbed(l *entities.Lottery, card *entities.Card) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎟️ Lottery Started",
		Description: fmt.Sprintf("**%s** is open. Pick a number from %s with `/lottery buy`.", l.Name, ticketRange),
		Color:       common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket Price", Value: common.FormatPoints(l.TicketPrice), Inline: true},
			{Name: "Prize", Value: prizeLabel(l, card), Inline: true},
		},
	}
}

func ticketEmbed(result *entities.TicketPurchaseResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎟️ Ticket Bought",
		Description: fmt.Sprintf("Number **%d** in **%s** did not win this time.", result.Ticket.TicketNumber, result.Lottery.Name),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tickets Sold", Value: common.FormatBalance(result.TicketsSold), Inline: true},
			{Name: "Your Balance", Value: common.FormatBalance(result.NewBalance), Inline: true},
		},
	}
}

func wonEmbed(result *entities.TicketPurchaseResult, userID int64) *discordgo.MessageEmbed {
	lines := []string{fmt.Sprintf("%s drew the winning number **%d** in **%s**!",
		common.GetUserMention(userID), result.Ticket.TicketNumber, result.Lottery.Name)}

	if result.CardWon != nil {
		lines = append(lines, "Prize: "+common.FormatCardLine(result.CardWon))
	} else {
		lines = append(lines, fmt.Sprintf("Prize: **%s** (house keeps %s)",
			common.FormatPoints(result.PointsWon), common.FormatPoints(result.HouseShare)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Lottery Won",
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tickets Sold", Value: common.FormatBalance(result.TicketsSold), Inline: true},
		},
	}
	if result.CardWon != nil && result.CardWon.ImageURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: result.CardWon.ImageURL}
	}
	return embed
}

func infoEmbed(info *entities.LotteryInfo) *discordgo.MessageEmbed {
	prize := common.FormatPoints(info.Prize)
	if info.Lottery.IsCardPrize() {
		prize = prizeLabel(info.Lottery, info.PrizeCard)
	}

	return &discordgo.MessageEmbed{
		Title: "🎟️ " + info.Lottery.Name,
		Color: common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket Price", Value: common.FormatPoints(info.Lottery.TicketPrice), Inline: true},
			{Name: "Tickets Sold", Value: common.FormatBalance(info.TicketsSold), Inline: true},
			{Name: "Current Prize", Value: prize, Inline: false},
			{Name: "Numbers", Value: ticketRange, Inline: true},
			{Name: "Started", Value: common.FormatDiscordTimestamp(info.Lottery.CreatedAt, "R"), Inline: true},
		},
	}
}

func listEmbed(list []*entities.Lottery) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(list))
	for _, l := range list {
		lines = append(lines, fmt.Sprintf("**%s**: %s per ticket, %s prize", l.Name, common.FormatPoints(l.TicketPrice), l.PrizeType))
	}

	return &discordgo.MessageEmbed{
		Title:       "🎟️ Running Lotteries",
		Description: common.JoinLines(lines, "No lotteries are running."),
		Color:       common.ColorInfo,
	}
}

func lotteryChoices(list []*entities.Lottery, query string) []*discordgo.ApplicationCommandOptionChoice {
	query = strings.ToLower(strings.TrimSpace(query))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(list))
	for _, l := range list {
		if query != "" && !strings.Contains(strings.ToLower(l.Name), query) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: l.Name, Value: l.Name})
		if len(choices) == common.MaxAutocomplete {
			break
		}
	}
	return choices
}
