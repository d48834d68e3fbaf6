package sets

import (
	"context"
	"net/http"
	"time"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles card sets
type Feature struct {
	runner     *common.Runner
	httpClient *http.Client
}

// NewFeature creates a new sets feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{
		runner:     runner,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// HandleCommand handles /set subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	switch sub {
	case "info":
		f.handleInfo(s, i, opts)
		return
	case "list":
		f.handleList(s, i)
		return
	}

	if !common.IsUserAdmin(s, i) {
		common.HandleError(s, i, common.ErrNotAdmin, false)
		return
	}

	switch sub {
	case "create":
		f.handleCreate(s, i, opts)
	case "add-card":
		f.handleMembership(s, i, opts, true)
	case "remove-card":
		f.handleMembership(s, i, opts, false)
	case "delete":
		f.handleDelete(s, i, opts)
	case "edit":
		f.handleEdit(s, i, opts)
	case "import":
		f.handleImport(s, i, opts)
	case "unload":
		f.handleUnload(s, i, opts)
	case "export":
		f.handleExport(s, i, opts)
	default:
		log.Warnf("Unknown set subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// HandleAutocomplete suggests set names
func (f *Feature) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, query string) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var sets []*entities.CardSet
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		sets, err = svc.Sets.List(ctx)
		return err
	})
	if err != nil {
		log.WithError(err).Debug("Set autocomplete failed")
		common.RespondAutocomplete(s, i, nil)
		return
	}

	common.RespondAutocomplete(s, i, setChoices(sets, query))
}
