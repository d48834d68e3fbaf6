package common

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Options indexes slash command options by name
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// OptionsOf indexes a list of options
func OptionsOf(opts []*discordgo.ApplicationCommandInteractionDataOption) Options {
	m := make(Options, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// SubCommand returns the invoked subcommand and its options
func SubCommand(i *discordgo.InteractionCreate) (string, Options) {
	opts := i.ApplicationCommandData().Options
	if len(opts) == 0 {
		return "", Options{}
	}
	sub := opts[0]
	if sub.Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", OptionsOf(opts)
	}
	return sub.Name, OptionsOf(sub.Options)
}

// Has reports whether the option was supplied
func (o Options) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// String returns a trimmed string option or ""
func (o Options) String(name string) string {
	if opt, ok := o[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

// Int returns an integer option or 0
func (o Options) Int(name string) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return 0
}

// Float returns a number option or 0
func (o Options) Float(name string) float64 {
	if opt, ok := o[name]; ok {
		return opt.FloatValue()
	}
	return 0
}

// UserID returns the id of a user option or ""
func (o Options) UserID(name string) string {
	if opt, ok := o[name]; ok {
		if id, isString := opt.Value.(string); isString {
			return id
		}
	}
	return ""
}

// ChannelID returns the id of a channel option or ""
func (o Options) ChannelID(name string) string {
	return o.UserID(name)
}

// AttachmentID returns the id of an attachment option or ""
func (o Options) AttachmentID(name string) string {
	return o.UserID(name)
}

// Focused returns the option currently being autocompleted
func Focused(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range opts {
		if opt.Focused {
			return opt
		}
		if f := Focused(opt.Options); f != nil {
			return f
		}
	}
	return nil
}

// SplitList splits a comma separated option into trimmed, non-empty items
func SplitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// Attachment returns the resolved attachment supplied for option name, or nil
func Attachment(i *discordgo.InteractionCreate, opts Options, name string) *discordgo.MessageAttachment {
	id := opts.AttachmentID(name)
	if id == "" {
		return nil
	}
	resolved := i.ApplicationCommandData().Resolved
	if resolved == nil {
		return nil
	}
	return resolved.Attachments[id]
}
