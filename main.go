package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/seoistop/check-domain-nc/checker"
	"github.com/seoistop/check-domain-nc/commands"
	"github.com/seoistop/check-domain-nc/config"
	"github.com/seoistop/check-domain-nc/ns"
)

var Logger *zap.Logger

// init logger
func init() {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}
}

func main() {
	inFile := flag.String("in", "", "input file, one domain per line")
	outFile := flag.String("out", "results.csv", "output CSV file")
	jsonFile := flag.String("json", "", "optional JSON output file")
	sandbox := flag.Bool("sandbox", false, "use the sandbox endpoint")
	timeout := flag.Int("timeout", 0, "HTTP timeout in seconds")
	batchSize := flag.Int("batch-size", 0, "domains per API call (max 50)")
	debug := flag.Bool("debug", false, "log raw XML on parse trouble")
	bot := flag.Bool("bot", false, "run as a Discord bot instead of a one-shot check")
	configPath := flag.String("config", "config.json", "path to config.json")
	flag.Parse()
	defer func() { _ = Logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		Logger.Fatal("Error loading config", zap.Error(err))
	}
	if *sandbox {
		cfg.UseSandbox = true
	}
	if *timeout > 0 {
		cfg.HTTPTimeout = *timeout
	}
	if *batchSize > 0 {
		cfg.BatchSize = *batchSize
	}
	if *debug {
		cfg.DebugXML = true
	}
	if err := cfg.Validate(); err != nil {
		Logger.Fatal("Invalid config", zap.Error(err))
	}

	if *bot {
		runBot(cfg)
		return
	}

	if *inFile == "" {
		Logger.Fatal("No input file, pass -in <file> (or -bot to run the Discord bot)")
	}
	client := ns.NewClient(cfg, Logger)
	chk := checker.New(client, cfg.BatchSize, Logger)
	globalErrors, err := chk.RunToFiles(*inFile, *outFile, *jsonFile)
	if err != nil {
		Logger.Fatal("Check failed", zap.Error(err))
	}
	for _, msg := range globalErrors {
		Logger.Warn("API error", zap.String("error", msg))
	}
	Logger.Info("Done", zap.String("csv", *outFile))
}

func runBot(cfg *config.Config) {
	if cfg.Token == "" {
		Logger.Fatal("No bot token, set BOT_TOKEN or token in config.json")
	}
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		Logger.Fatal("Error creating Discord session", zap.Error(err))
		return
	}
	discord.Identify.Intents = discordgo.IntentMessageContent

	commands.BulkCheck.Config = cfg
	commands.BulkCheck.Logger = Logger

	_commands := []*discordgo.ApplicationCommand{
		commands.BulkCheck.Command,
	}
	commandHandlers := map[string]func(*discordgo.Session, *discordgo.InteractionCreate){
		commands.BulkCheck.Command.Name: commands.BulkCheck.Execute,
	}

	discord.AddHandler(func(session *discordgo.Session, _ *discordgo.Ready) {
		Logger.Info(session.State.User.Username + " is ready")
	})
	discord.AddHandler(func(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
		if interaction.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if handler, ok := commandHandlers[interaction.ApplicationCommandData().Name]; ok {
			handler(session, interaction)
		}
	})

	if err := discord.Open(); err != nil {
		Logger.Fatal("Error opening connection", zap.Error(err))
		return
	}
	for _, command := range _commands {
		_, err := discord.ApplicationCommandCreate(discord.State.User.ID, "", command)
		if err != nil {
			Logger.Fatal("Error creating slash command", zap.Error(err))
			return
		}
	}
	Logger.Info("Bot is running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	if err := discord.Close(); err != nil {
		Logger.Fatal("Error closing connection", zap.Error(err))
		return
	}
	Logger.Info("Bot is shutting down")
}
