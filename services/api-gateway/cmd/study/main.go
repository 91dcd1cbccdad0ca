package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/client"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/config"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/prefs"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/study"
)

func main() {
	// 1. Конфиг и флаги
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	defaultPrefs, err := prefs.DefaultPath()
	if err != nil {
		defaultPrefs = "prefs.yaml"
	}

	userID := pflag.StringP("user", "u", "", "user id (required)")
	username := pflag.String("name", "", "display name")
	courseID := pflag.String("course", "", "course id recorded on rewards")
	lang := pflag.String("lang", "", "UI language, saved to the prefs file")
	mascot := pflag.String("mascot", "", "mascot variant: idle, buzzing or sleepy")
	prefsPath := pflag.String("prefs", defaultPrefs, "preferences file")
	questionsPath := pflag.String("questions", "", "YAML question file, bundled questions when empty")
	addr := pflag.String("economy", cfg.EconomySvcUrl, "economy service address")
	timeout := pflag.Duration("timeout", cfg.RPCTimeout, "timeout for each economy call")
	pflag.Parse()

	if *userID == "" {
		pflag.Usage()
		os.Exit(2)
	}

	tr, err := i18n.Load(cfg.DefaultLang)
	if err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	// 2. Настройки ученика (язык, маскот)
	store := prefs.NewStore(*prefsPath)
	p, err := store.Load()
	if err != nil {
		log.Printf("Ignoring preferences: %v", err)
	}
	if *lang != "" || *mascot != "" {
		if *lang != "" {
			p.Language = tr.Match(*lang)
		}
		if *mascot != "" {
			p.Mascot = *mascot
		}
		if err := store.Save(p); err != nil {
			log.Fatalf("Failed to save preferences: %v", err)
		}
	}

	// 3. Вопросы: встроенные или из файла
	questions, err := study.BundledQuestions()
	if *questionsPath != "" {
		var data []byte
		if data, err = os.ReadFile(*questionsPath); err == nil {
			questions, err = study.ParseQuestions(data)
		}
	}
	if err != nil {
		log.Fatalf("Failed to load questions: %v", err)
	}

	// 4. gRPC Клиент для Economy
	economyClient, err := client.NewEconomyClient(*addr)
	if err != nil {
		log.Fatalf("Failed to connect to Economy Service: %v", err)
	}
	defer economyClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. Сессия: сердца тикают в фоне, ответы читаем из stdin
	name := *username
	if name == "" {
		name = *userID
	}
	session := study.NewSession(economyClient.Client, study.Config{
		UserID:    *userID,
		Username:  name,
		CourseID:  *courseID,
		Questions: questions,
		Prefs:     p,
	}, tr, os.Stdout, client.WithCallTimeout(*timeout))

	release, err := session.Start(ctx)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	defer release()

	go session.Hearts().Run(ctx)

	if err := session.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Printf("Session ended: %v", err)
	}
}
