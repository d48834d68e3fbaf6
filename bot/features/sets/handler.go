package sets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleCreate processes /set create
func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var set *entities.CardSet
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		set, err = svc.Sets.Create(ctx, opts.String("name"), opts.String("description"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Created set **%s**.", set.Name), true)
}

// handleMembership processes /set add-card and /set remove-card
func (f *Feature) handleMembership(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options, add bool) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	setName := opts.String("set")
	ctx := context.Background()
	var card *entities.Card
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		if add {
			card, err = svc.Sets.AddCard(ctx, setName, opts.String("card"))
		} else {
			card, err = svc.Sets.RemoveCard(ctx, setName, opts.String("card"))
		}
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if add {
		common.RespondWithSuccess(s, i, fmt.Sprintf("Added %s to set **%s**.", common.FormatCardLine(card), setName), true)
	} else {
		common.RespondWithSuccess(s, i, fmt.Sprintf("Removed %s from set **%s**.", common.FormatCardLine(card), setName), true)
	}
}

// handleDelete processes /set delete
func (f *Feature) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	name := opts.String("name")
	ctx := context.Background()
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		return svc.Sets.Delete(ctx, name)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Deleted set **%s**. Its cards were kept.", name), true)
}

// handleEdit processes /set edit
func (f *Feature) handleEdit(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var set *entities.CardSet
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		set, err = svc.Sets.Edit(ctx, opts.String("name"), setPatch(opts))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Updated set **%s**.", set.Name), true)
}

// handleUnload processes /set unload
func (f *Feature) handleUnload(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var set *entities.CardSet
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		set, err = svc.Sets.Unload(ctx, opts.String("name"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Unloaded preset **%s**. Its cards were kept.", set.Name), true)
}

// handleExport processes /set export, replying with the set as a JSON attachment
func (f *Feature) handleExport(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer set export response: %v", err)
		return
	}

	ctx := context.Background()
	var preset *entities.PresetSet
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		preset, err = svc.Sets.Export(ctx, opts.String("name"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	var buf bytes.Buffer
	if err := entities.EncodePreset(&buf, preset); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to encode set export"), true)
		return
	}

	common.FollowUpWithFile(s, i, exportFileName(preset.Name), "application/json", buf.Bytes(), exportEmbed(preset))
}

func setPatch(opts common.Options) entities.CardSetPatch {
	var patch entities.CardSetPatch
	if opts.Has("new_name") {
		name := opts.String("new_name")
		patch.Name = &name
	}
	if opts.Has("description") {
		description := opts.String("description")
		patch.Description = &description
	}
	return patch
}

// handleInfo processes /set info
func (f *Feature) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var detail *entities.CardSetDetail
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		detail, err = svc.Sets.Info(ctx, opts.String("name"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, setDetailEmbed(detail), nil, false)
}

// handleList processes /set list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var sets []*entities.CardSet
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		sets, err = svc.Sets.List(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, setListEmbed(sets), nil, false)
}

// handleImport processes /set import, reading the preset from the attached JSON file
func (f *Feature) handleImport(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	file := common.Attachment(i, opts, "file")
	if file == nil {
		common.HandleError(s, i, common.NewUserError("Please attach a JSON file.", "set import without attachment"), false)
		return
	}
	if file.Size > common.MaxPresetFileSize {
		common.HandleError(s, i, common.NewUserError("That file is too large to import.", "oversized set import"), false)
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer set import response: %v", err)
		return
	}

	ctx := context.Background()
	preset, err := f.downloadPreset(ctx, file.URL)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	var detail *entities.CardSetDetail
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		detail, err = svc.Sets.ImportPreset(ctx, preset, false)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	common.FollowUpWithEmbed(s, i, setDetailEmbed(detail), nil)
}

func (f *Feature) downloadPreset(ctx context.Context, url string) (*entities.PresetSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to build attachment request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to download attachment")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewSystemError(fmt.Errorf("status %d", resp.StatusCode), "Failed to download attachment")
	}

	preset, err := entities.DecodePreset(io.LimitReader(resp.Body, common.MaxPresetFileSize))
	if err != nil {
		userErr := common.NewUserError("That file is not a valid set definition.", "invalid preset upload")
		userErr.Err = err
		return nil, userErr
	}
	return preset, nil
}
