package profile

import (
	"fmt"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

const notSet = "n/a"

func profileEmbed(view *entities.ProfileView) *discordgo.MessageEmbed {
	bio := view.Profile.Bio
	if bio == "" {
		bio = "No bio yet."
	}
	favourite := notSet
	if view.FavouriteCard != nil {
		favourite = common.FormatCardLine(view.FavouriteCard)
	}
	searching := view.Profile.SearchingFor
	if searching == "" {
		searching = notSet
	}

	return &discordgo.MessageEmbed{
		Title:       "🪪 Profile",
		Description: fmt.Sprintf("%s\n\n%s", common.GetUserMention(view.Profile.UserID), bio),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Favourite Card", Value: favourite, Inline: false},
			{Name: "Searching For", Value: searching, Inline: false},
			{Name: "Collection", Value: fmt.Sprintf("%d distinct cards, %d total", view.DistinctCards, view.TotalCards), Inline: false},
		},
	}
}
