package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/seoistop/check-domain-nc/checker"
	"github.com/seoistop/check-domain-nc/config"
	"github.com/seoistop/check-domain-nc/ns"
	"github.com/seoistop/check-domain-nc/util"
)

type BulkCheckCommand struct {
	Command *discordgo.ApplicationCommand
	Config  *config.Config
	Logger  *zap.Logger
}

var BulkCheck = BulkCheckCommand{
	Command: &discordgo.ApplicationCommand{
		Name:        "bulkcheck",
		Description: "check availability and pricing for a list of domains",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionAttachment,
				Name:        "file",
				Description: "Text file with one domain per line",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "json",
				Description: "Also attach the JSON dump",
			},
		},
	},
}

func (c *BulkCheckCommand) Execute(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	var err error
	if c.Config.AllowedChannelID != "" && interaction.ChannelID != c.Config.AllowedChannelID {
		err = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "This command is not allowed in this channel",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			return
		}
		return
	}
	applicationCommandData := interaction.ApplicationCommandData()
	options := applicationCommandData.Options
	fileId := options[0].Value.(string)
	withJson := false
	if len(options) > 1 {
		withJson = options[1].BoolValue()
	}

	// discord defer reply
	err = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return
	}

	attachment := applicationCommandData.Resolved.Attachments[fileId]
	data, err := util.DownloadFile(attachment.URL)
	if err != nil {
		editDeferredReply(session, interaction, fmt.Sprintf("Error downloading %s: %s", attachment.Filename, err.Error()))
		return
	}
	domains := checker.NormalizeDomains(strings.Split(string(data), "\n"))
	if len(domains) == 0 {
		editDeferredReply(session, interaction, "No domains found in the file. One domain per line, # starts a comment.")
		return
	}

	// The whole run can take minutes for large lists; keep the handler free.
	go func() {
		client := ns.NewClient(c.Config, c.Logger)
		chk := checker.New(client, c.Config.BatchSize, c.Logger)
		results, globalErrors := chk.Run(domains)
		chk.AttachTldPricing(results)

		var csvBuf bytes.Buffer
		if err := checker.WriteCSVTo(&csvBuf, results); err != nil {
			editDeferredReply(session, interaction, fmt.Sprintf("Error writing CSV: %s", err.Error()))
			return
		}
		files := []*discordgo.File{
			{Name: "results.csv", ContentType: "text/csv", Reader: &csvBuf},
		}
		if withJson {
			var jsonBuf bytes.Buffer
			if err := checker.WriteJSONTo(&jsonBuf, results, globalErrors); err != nil {
				editDeferredReply(session, interaction, fmt.Sprintf("Error writing JSON: %s", err.Error()))
				return
			}
			files = append(files, &discordgo.File{Name: "results.json", ContentType: "application/json", Reader: &jsonBuf})
		}

		content := fmt.Sprintf("Checked %d domain(s)", len(results))
		if len(globalErrors) > 0 {
			content += fmt.Sprintf("\nErrors:\n```\n%s\n```", strings.Join(globalErrors, "\n"))
		}
		_, err := session.InteractionResponseEdit(interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
			Files:   files,
		})
		if err != nil {
			c.Logger.Error("Error sending results", zap.Error(err))
		}
	}()
}

func editDeferredReply(session *discordgo.Session, interaction *discordgo.InteractionCreate, content string) {
	_, _ = session.InteractionResponseEdit(interaction.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
}
