package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	intlogger "jobquest/internal/logger"

	"jobquest/internal/game"
	"jobquest/internal/headhunter"
	"jobquest/internal/relevance"
	"jobquest/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptApply            = "Apply to a vacancy"
	PromptFullReport       = "Show the full report"
	PromptExit             = "Exit"
	PromptBack             = "back"
	defaultFallbackMessage = "Hello! I would like to apply for this vacancy."
)

var errExit = errors.New("exit requested")

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Search vacancies and score them against your resume",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().IntP("top", "t", 10, "how many vacancies to show in the report")
}

type scoredVacancy struct {
	vacancy *headhunter.Vacancy
	result  *relevance.Result
}

// score is the interactive scoring command: search, score, report, apply.
func score(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := intlogger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.Search == nil {
		logger.Fatal("a search section in the config is required to score vacancies")
	}

	token, err := resolveToken(config)
	if err != nil {
		logger.Fatal(
			"loading headhunter token",
			zap.Error(err),
			zap.String("hint", "set HH_TOKEN_FILE environment variable or the 'token-file' key in the configuration file"),
		)
	}

	hh := headhunter.New(ctx, logger, token)

	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}

	resumes, err := hh.GetMineResumes()
	if err != nil {
		logger.Fatal("getting mine resumes", zap.Error(err))
	}

	published := resumes.PublishedOnly()
	if published.Len() == 0 {
		logger.Fatal("no published resumes found",
			zap.Any("existing resume titles", resumes.Titles()),
		)
	}

	selectedResume, err := pickResume(config, published)
	if err != nil {
		logger.Fatal("selecting a resume", zap.Error(err))
	}

	logger.Info("starting the search", zap.String("search", config.Search.Text))

	vacancies, err := hh.Search(config.Search)
	if err != nil {
		logger.Fatal("searching vacancies", zap.Error(err))
	}

	if vacancies.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no vacancies found"))
		return
	}

	// Vacancies we already negotiated on are noise in the report.
	if negotiations, err := hh.GetNegotiations(); err != nil {
		logger.Warn("skipping applied-history exclusion", zap.Error(err))
	} else {
		vacancies.Exclude(negotiations.VacanciesIDs())
	}

	report, err := buildReport(vacancies, selectedResume)
	if err != nil {
		logger.Fatal("scoring vacancies", zap.Error(err))
	}

	top, _ := cmd.Flags().GetInt("top")
	printReport(report, top)

	prompt := promptui.Select{
		Label: "Proceed?",
		Items: []string{PromptApply, PromptFullReport, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, hh, logger, config, report, selectedResume); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, hh *headhunter.Client, logger *zap.Logger, config *Config, report []scoredVacancy, resume *headhunter.Resume) error {
	switch action {
	case PromptApply:
		return applyInteractive(ctx, hh, logger, config, report, resume)
	case PromptFullReport:
		printReport(report, len(report))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func pickResume(config *Config, resumes *headhunter.Resumes) (*headhunter.Resume, error) {
	if config.Apply != nil && config.Apply.Resume != "" {
		resume := resumes.FindByTitle(config.Apply.Resume)
		if resume == nil {
			return nil, fmt.Errorf("resume with title %q not found among published resumes %v",
				config.Apply.Resume, resumes.Titles())
		}
		return resume, nil
	}

	prompt := promptui.Select{
		Label: "Choose a resume to score against",
		Items: resumes.Titles(),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return resumes.Items[idx], nil
}

// buildReport scores every vacancy and sorts the result best-first.
func buildReport(vacancies *headhunter.Vacancies, resume *headhunter.Resume) ([]scoredVacancy, error) {
	scoringResume := &relevance.Resume{
		Title:      resume.Title,
		Experience: resume.Skills,
		Skills:     resume.SkillSet,
	}

	report := make([]scoredVacancy, 0, vacancies.Len())
	for _, vacancy := range vacancies.Items {
		result, err := relevance.Compute(&relevance.Vacancy{
			Title:        vacancy.Name,
			Company:      vacancy.Employer.Name,
			Salary:       vacancy.SalaryString(),
			Description:  vacancyText(vacancy),
			Requirements: vacancy.Requirements(),
		}, scoringResume)
		if err != nil {
			return nil, fmt.Errorf("scoring vacancy %s: %w", vacancy.ID, err)
		}

		report = append(report, scoredVacancy{vacancy: vacancy, result: result})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].result.Score > report[j].result.Score
	})

	return report, nil
}

// vacancyText prefers the full description; search results usually carry only
// the snippet.
func vacancyText(vacancy *headhunter.Vacancy) string {
	if strings.TrimSpace(vacancy.Description) != "" {
		return vacancy.Description
	}

	parts := make([]string, 0, 2)
	if vacancy.Snippet.Responsibility != "" {
		parts = append(parts, vacancy.Snippet.Responsibility)
	}
	if vacancy.Snippet.Requirement != "" {
		parts = append(parts, vacancy.Snippet.Requirement)
	}

	return strings.Join(parts, " ")
}

func printReport(report []scoredVacancy, top int) {
	if top > len(report) || top <= 0 {
		top = len(report)
	}

	fmt.Printf("\nTop %d of %d vacancies:\n\n", top, len(report))
	for _, entry := range report[:top] {
		fmt.Printf("%3d  %s / %s / %s\n", entry.result.Score, entry.vacancy.Name, entry.vacancy.Employer.Name, entry.vacancy.AlternateURL)
		fmt.Printf("     %s\n", strings.Join(entry.result.Reasons, "; "))
	}
	fmt.Println()
}

func applyInteractive(ctx context.Context, hh *headhunter.Client, logger *zap.Logger, config *Config, report []scoredVacancy, resume *headhunter.Resume) error {
	for {
		items := make([]string, 0, len(report)+1)
		for _, entry := range report {
			items = append(items, fmt.Sprintf("%s %d %s / %s",
				entry.vacancy.ID, entry.result.Score, entry.vacancy.Name, entry.vacancy.Employer.Name,
			))
		}

		vacancyPrompt := promptui.Select{
			Label: "Choose a vacancy and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := vacancyPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		vacancyID := strings.Split(selected, " ")[0]
		var entry *scoredVacancy
		for i := range report {
			if report[i].vacancy.ID == vacancyID {
				entry = &report[i]
				break
			}
		}
		if entry == nil {
			return fmt.Errorf("there is no such vacancy id %s", vacancyID)
		}

		message := ""
		if config.Apply != nil {
			message = config.Apply.Message
		}
		if message == "" {
			message = defaultFallbackMessage
			logger.Warn("falling back to default built-in message",
				zap.String("vacancy_id", entry.vacancy.ID),
				zap.String("hint", "specify message in apply section"),
			)
		}

		if err := hh.Apply(resume, &headhunter.Vacancies{Items: []*headhunter.Vacancy{entry.vacancy}}, message); err != nil {
			return err
		}

		if err := recordApplication(ctx, config, logger, entry, resume, message); err != nil {
			logger.Warn("recording application locally failed", zap.Error(err))
		}
	}
}

// recordApplication mirrors the application into the local database so the
// streak and XP progression also cover CLI usage.
func recordApplication(ctx context.Context, config *Config, logger *zap.Logger, entry *scoredVacancy, resume *headhunter.Resume, message string) error {
	database := config.Database
	if database == "" {
		database = viper.GetString("database")
	}

	db, err := store.Open(database, logger)
	if err != nil {
		return err
	}

	loc, err := loadLocation(config)
	if err != nil {
		return err
	}

	user, err := db.GetOrCreateUser(ctx, "mine")
	if err != nil {
		return err
	}

	if err := db.UpsertResume(ctx, &store.Resume{
		UserID:     user.ID,
		ExternalID: resume.ID,
		Title:      resume.Title,
		Experience: resume.Skills,
		Skills:     resume.SkillSet,
		Published:  true,
	}); err != nil {
		return err
	}

	if err := db.UpsertVacancy(ctx, &store.Vacancy{
		ExternalID:   entry.vacancy.ID,
		Title:        entry.vacancy.Name,
		Company:      entry.vacancy.Employer.Name,
		Salary:       entry.vacancy.SalaryString(),
		Description:  vacancyText(entry.vacancy),
		Requirements: entry.vacancy.Requirements(),
	}); err != nil {
		return err
	}

	if err := db.CreateApplication(ctx, &store.Application{
		UserID:            user.ID,
		VacancyExternalID: entry.vacancy.ID,
		ResumeExternalID:  resume.ID,
		Letter:            message,
	}); err != nil {
		return err
	}

	engine := game.New(db, logger, config.Game, loc)
	result, err := engine.AwardApplicationXP(ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("+%d XP (level %d, streak %d days)\n", engine.AwardForKind(store.ActionApply), result.Level, result.Streak)
	for _, kind := range result.Unlocked {
		fmt.Printf("achievement unlocked: %s\n", kind)
	}

	return nil
}
