package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"quickhire-proctor/internal/config"
	"quickhire-proctor/internal/interview"
	"quickhire-proctor/internal/metrics"
	"quickhire-proctor/internal/platform"
	"quickhire-proctor/internal/session"
	"quickhire-proctor/internal/storage"
)

func main() {
	// Загружаем переменные окружения из .env файла
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Файл .env не найден, используем системные переменные окружения")
	}

	cfg, err := config.Load("config/proctor.yaml")
	if err != nil {
		log.Printf("⚠️ Ошибка загрузки конфигурации: %v, используем значения по умолчанию", err)
		cfg = config.Default()
	}

	appCfg := config.LoadAppConfig()

	log.Println("🚀 Запуск демо-режима прокторинга интервью...")

	interviewCode := getArg(1, "demo")
	candidateCode := getArg(2, "")
	skills := cfg.Interview.DefaultSkills

	var store platform.Storage
	if appCfg.Storage.Dir != "" {
		fileStore, err := storage.OpenFileStorage(appCfg.Storage.Dir, interviewCode)
		if err != nil {
			log.Fatalf("❌ Ошибка открытия хранилища сессии: %v", err)
		}
		store = fileStore
		log.Printf("💾 Хранилище сессии: %s", appCfg.Storage.Dir)
	} else {
		store = platform.NewMemoryStorage()
		log.Println("💾 Хранилище сессии: в памяти")
	}

	var api session.API
	if appCfg.Backend.BaseURL != "" {
		api = interview.NewClient(appCfg.Backend)
		log.Printf("🌐 Сервис вопросов: %s", appCfg.Backend.BaseURL)
	} else {
		api = interview.NewMockClient(cfg.GetTotalQuestions(), cfg.GetMaxFollowupQuestions())
		log.Println("🧪 Сервис вопросов: тренировочный режим без сервера")
	}

	sim := platform.NewSim(store)
	appMetrics := metrics.NewMetrics()

	controller := session.NewController(cfg, sim, api, appMetrics, session.Options{
		InterviewCode: interviewCode,
		CandidateCode: candidateCode,
		Skills:        skills,
		Results:       storage.NewService(appCfg.Storage.ResultsDir),
		Notify:        func(message string) { fmt.Printf("💬 %s\n", message) },
	})

	if err := controller.Start(); err != nil {
		log.Fatalf("❌ Ошибка запуска сессии: %v", err)
	}
	defer controller.Close()

	fmt.Println("✅ Сессия запущена. Введите 'help' для списка команд.")
	printQuestion(controller)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		command := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		if command == "quit" || command == "exit" {
			break
		}
		runCommand(controller, sim, appMetrics, command, arg)

		if controller.IsComplete() {
			fmt.Printf("🎉 Интервью завершено!\n📊 Итоговая оценка: %s\n", controller.FinalEvaluation())
			break
		}
	}

	log.Println("👋 Демо-режим завершен")
}

func runCommand(c *session.Controller, sim *platform.Sim, m *metrics.Metrics, command, arg string) {
	switch command {
	case "help":
		printHelp()
	case "enterfs":
		if err := c.RequestFullscreen(); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
	case "exitfs":
		sim.ExitFullscreen()
	case "nofs":
		c.ContinueWithoutFullscreen()
	case "hide":
		sim.Hide()
	case "show":
		sim.Show()
	case "blur":
		sim.LoseFocus()
	case "focus":
		sim.GainFocus()
	case "key":
		if arg == "" {
			arg = "a"
		}
		sim.PressKey(arg)
	case "copy":
		sim.Copy()
	case "paste":
		sim.Paste()
	case "select":
		sim.StartSelection()
	case "ctx":
		sim.OpenContextMenu()
	case "resize":
		sim.Resize()
	case "record":
		if err := c.StartRecording(); err != nil {
			fmt.Printf("❌ %v\n", err)
		} else {
			fmt.Println("🎙️ Запись началась, завершите командой 'stop <текст ответа>'")
		}
	case "stop":
		if err := c.StopRecording(arg); err != nil {
			fmt.Printf("❌ %v\n", err)
		} else {
			printQuestion(c)
		}
	case "code":
		c.SetCode(arg)
		fmt.Println("📝 Код сохранен в редакторе")
	case "submitcode":
		if err := c.SubmitCode(arg); err != nil {
			fmt.Printf("❌ %v\n", err)
		} else {
			printQuestion(c)
		}
	case "skip":
		if err := c.SkipQuestion(); err != nil {
			fmt.Printf("❌ %v\n", err)
		} else {
			printQuestion(c)
		}
	case "report":
		if err := c.ReportActivity(); err != nil {
			fmt.Printf("❌ %v\n", err)
		} else {
			fmt.Println("📡 Отчет активности отправлен")
		}
	case "status":
		printStatus(c)
	case "metrics":
		printMetrics(m)
	default:
		fmt.Printf("❓ Неизвестная команда: %s, введите 'help'\n", command)
	}
}

func printHelp() {
	fmt.Println(`Команды демо-режима:
  enterfs     войти в полноэкранный режим
  exitfs      выйти из полноэкранного режима (пауза)
  nofs        продолжить без полноэкранного режима
  hide/show   скрыть/показать вкладку
  blur/focus  убрать/вернуть фокус окна
  key <k>     нажать клавишу (например "Ctrl+W")
  copy/paste  попытка работы с буфером обмена
  select      попытка выделения текста
  ctx         открыть контекстное меню
  resize      изменить размер окна
  record      начать запись ответа
  stop <t>    завершить запись с текстом t
  code <t>    набрать код в редакторе
  submitcode <t>  отправить код как ответ
  skip        пропустить вопрос
  report      отправить отчет активности
  status      показать состояние сессии
  metrics     показать метрики
  quit        выйти`)
}

func printQuestion(c *session.Controller) {
	question := c.CurrentQuestion()
	if question == nil || c.IsComplete() {
		return
	}
	current, total := c.Progress()
	fmt.Printf("❓ Вопрос %d/%d [%s]: %s\n", current, total, question.Topic, question.Question)
}

func printStatus(c *session.Controller) {
	counters := c.Counters()
	fmt.Printf("📊 Состояние: %s\n", c.Compliance())
	fmt.Printf("🚨 Подозрительная активность: %d, переключения: %d (уровень %s)\n",
		counters.SuspiciousActivityCount, counters.AppSwitchCount,
		session.ActivityLevel(len(c.EventLog())))
	if d := c.PauseDuration(); d > 0 {
		fmt.Printf("⏸️ Пауза длится: %s\n", d.Round(time.Second))
	}
	printQuestion(c)
}

func printMetrics(m *metrics.Metrics) {
	snapshot := m.GetSnapshot()
	fmt.Printf("📈 Сессии: старт %d, завершено %d, пауз %d, возобновлений %d\n",
		snapshot.SessionsStarted, snapshot.SessionsCompleted,
		snapshot.SessionsPaused, snapshot.SessionsResumed)
	fmt.Printf("📈 Нарушений: %d, заблокировано действий: %d, API вызовов: %d/%d\n",
		snapshot.ViolationsRecorded, snapshot.ActionsBlocked,
		snapshot.APICallsSuccessful, snapshot.APICallsTotal)
}

func getArg(index int, defaultValue string) string {
	if len(os.Args) > index {
		return os.Args[index]
	}
	return defaultValue
}
