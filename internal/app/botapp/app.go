package botapp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vthuan-dev/girl-picks-sub004/internal/config"
	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	s3infra "github.com/vthuan-dev/girl-picks-sub004/internal/infra/s3"
	tginfra "github.com/vthuan-dev/girl-picks-sub004/internal/infra/telegram"
	"github.com/vthuan-dev/girl-picks-sub004/internal/jobs/cleanup"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
	modsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/moderation"
	notifysvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/notifications"
)

const (
	notAllowedReply  = "You are not on the moderator list."
	queueEmptyReply  = "The moderation queue is empty."
	usageReply       = "Commands: /pending, /queue <kind>, /approve <kind> <id>, /reject <kind> <id> <reason>, /report <id> <resolved|dismissed> [notes]"
	unknownKindReply = "Unknown kind. Use post, review or community_post."
)

// rejectState tracks a moderator who pressed the inline Reject button and
// still owes a reason text.
type rejectState struct {
	Kind        enums.ContentKind
	ContentID   int64
	ModeratorID int64
}

type App struct {
	cfg               config.Config
	logger            *zap.Logger
	postgres          *pgxpool.Pool
	bot               *tginfra.Bot
	moderationService *modsvc.Service
	cleanupJob        *cleanup.Job

	rejectMu     sync.Mutex
	rejectByChat map[int64]rejectState
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("init postgres for bot app: %w", err)
	}

	moderationRepo := pgrepo.NewModerationRepo(pool)
	reportRepo := pgrepo.NewReportRepo(pool)
	notificationRepo := pgrepo.NewNotificationRepo(pool)
	notificationService := notifysvc.NewService(notificationRepo)

	var signer modsvc.URLSigner
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		logger.Warn("s3 init failed, queue links will show raw keys", zap.Error(err))
	} else {
		signer = s3infra.NewSigner(c, cfg.S3.Bucket)
	}

	moderationService := modsvc.NewService(moderationRepo, reportRepo, notificationService, signer, logger)
	cleanupJob := cleanup.NewNotificationCleanupJob(notificationRepo, cfg.Bot.ReadRetention, logger)

	var bot *tginfra.Bot
	if strings.TrimSpace(cfg.Bot.Token) != "" {
		bot, err = tginfra.NewBot(cfg.Bot.Token)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init telegram bot: %w", err)
		}
	} else {
		logger.Warn("BOT_TOKEN is empty, moderator commands disabled")
	}

	return &App{
		cfg:               cfg,
		logger:            logger,
		postgres:          pool,
		bot:               bot,
		moderationService: moderationService,
		cleanupJob:        cleanupJob,
		rejectByChat:      make(map[int64]rejectState),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("bot app started")

	errCh := make(chan error, 2)
	go func() {
		errCh <- a.runCleanupLoop(ctx)
	}()

	if a.bot != nil {
		go func() {
			errCh <- a.bot.Listen(ctx, tginfra.Handlers{
				OnCommand:  a.handleCommand,
				OnText:     a.handleText,
				OnCallback: a.handleCallback,
			})
		}()
	}

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("bot app stopped")
			return nil
		case err := <-errCh:
			if err == nil || errors.Is(err, context.Canceled) {
				continue
			}
			return err
		}
	}
}

func (a *App) runCleanupLoop(ctx context.Context) error {
	if a.cleanupJob == nil {
		return nil
	}

	interval := a.cfg.Bot.CleanupInterval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	if err := a.cleanupJob.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := a.cleanupJob.Run(ctx); err != nil {
				return err
			}
		}
	}
}

// moderatorID resolves a telegram sender to a moderator account through
// the configured allow-list.
func (a *App) moderatorID(tgUserID int64) (int64, bool) {
	id, ok := a.cfg.Bot.Moderators[tgUserID]
	return id, ok
}

func (a *App) handleCommand(ctx context.Context, update tginfra.CommandUpdate) error {
	if a.bot == nil {
		return nil
	}

	moderatorID, ok := a.moderatorID(update.UserID)
	if !ok {
		return a.bot.SendText(ctx, update.ChatID, notAllowedReply)
	}

	args := strings.Fields(update.Args)
	switch strings.ToLower(strings.TrimSpace(update.Command)) {
	case "pending":
		return a.sendPendingCounts(ctx, update.ChatID)
	case "queue":
		if len(args) != 1 {
			return a.bot.SendText(ctx, update.ChatID, usageReply)
		}
		return a.sendQueueHead(ctx, update.ChatID, args[0])
	case "approve":
		if len(args) != 2 {
			return a.bot.SendText(ctx, update.ChatID, usageReply)
		}
		return a.decideFromCommand(ctx, update.ChatID, moderatorID, args[0], args[1], enums.ContentStatusApproved, "")
	case "reject":
		if len(args) < 3 {
			return a.bot.SendText(ctx, update.ChatID, usageReply)
		}
		reason := strings.Join(args[2:], " ")
		return a.decideFromCommand(ctx, update.ChatID, moderatorID, args[0], args[1], enums.ContentStatusRejected, reason)
	case "report":
		if len(args) < 2 {
			return a.bot.SendText(ctx, update.ChatID, usageReply)
		}
		notes := strings.Join(args[2:], " ")
		return a.processReportFromCommand(ctx, update.ChatID, moderatorID, args[0], args[1], notes)
	default:
		return a.bot.SendText(ctx, update.ChatID, usageReply)
	}
}

func (a *App) sendPendingCounts(ctx context.Context, chatID int64) error {
	counts, err := a.moderationService.Pending(ctx)
	if err != nil {
		return a.bot.SendText(ctx, chatID, "Failed to load pending counts.")
	}

	text := strings.Join([]string{
		"Pending moderation:",
		fmt.Sprintf("- posts: %d", counts.Posts),
		fmt.Sprintf("- reviews: %d", counts.Reviews),
		fmt.Sprintf("- community posts: %d", counts.CommunityPosts),
		fmt.Sprintf("- reports: %d", counts.Reports),
	}, "\n")
	return a.bot.SendText(ctx, chatID, text)
}

func (a *App) sendQueueHead(ctx context.Context, chatID int64, rawKind string) error {
	kind, ok := enums.ParseContentKind(rawKind)
	if !ok {
		return a.bot.SendText(ctx, chatID, unknownKindReply)
	}

	items, err := a.moderationService.Queue(ctx, kind, 1)
	if err != nil {
		return a.bot.SendText(ctx, chatID, "Failed to load the queue.")
	}
	if len(items) == 0 {
		return a.bot.SendText(ctx, chatID, queueEmptyReply)
	}

	item := items[0]
	text := formatQueueMessage(kind, item)
	approveData := fmt.Sprintf("mod:approve:%s:%d", kind, item.ID)
	rejectData := fmt.Sprintf("mod:reject:%s:%d", kind, item.ID)
	return a.bot.SendQueueItem(ctx, chatID, text, approveData, rejectData)
}

func (a *App) decideFromCommand(ctx context.Context, chatID, moderatorID int64, rawKind, rawID string, target enums.ContentStatus, reason string) error {
	kind, ok := enums.ParseContentKind(rawKind)
	if !ok {
		return a.bot.SendText(ctx, chatID, unknownKindReply)
	}
	contentID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || contentID <= 0 {
		return a.bot.SendText(ctx, chatID, "Invalid content id.")
	}

	if target == enums.ContentStatusApproved {
		_, err = a.moderationService.Approve(ctx, kind, contentID, moderatorID, "")
	} else {
		_, err = a.moderationService.Reject(ctx, kind, contentID, moderatorID, reason)
	}
	return a.bot.SendText(ctx, chatID, decisionReply(target, err))
}

func (a *App) processReportFromCommand(ctx context.Context, chatID, moderatorID int64, rawID, rawOutcome, notes string) error {
	reportID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || reportID <= 0 {
		return a.bot.SendText(ctx, chatID, "Invalid report id.")
	}

	outcome, ok := enums.ParseReportStatus(rawOutcome)
	if !ok || !outcome.Terminal() {
		return a.bot.SendText(ctx, chatID, "Outcome must be resolved or dismissed.")
	}

	_, err = a.moderationService.ProcessReport(ctx, reportID, moderatorID, outcome, notes)
	switch {
	case err == nil:
		return a.bot.SendText(ctx, chatID, fmt.Sprintf("Report #%d %s.", reportID, strings.ToLower(string(outcome))))
	case errors.Is(err, modsvc.ErrReportNotFound):
		return a.bot.SendText(ctx, chatID, "Report not found.")
	case errors.Is(err, modsvc.ErrAlreadyProcessed):
		return a.bot.SendText(ctx, chatID, "Report was already processed.")
	default:
		return a.bot.SendText(ctx, chatID, "Failed to process the report.")
	}
}

func (a *App) handleCallback(ctx context.Context, update tginfra.CallbackUpdate) error {
	if a.bot == nil {
		return nil
	}

	moderatorID, ok := a.moderatorID(update.UserID)
	if !ok {
		return a.bot.AnswerCallback(ctx, update.CallbackID, notAllowedReply)
	}

	parts := strings.Split(strings.TrimSpace(update.Data), ":")
	if len(parts) != 4 || parts[0] != "mod" {
		return a.bot.AnswerCallback(ctx, update.CallbackID, "Unknown action")
	}

	kind, ok := enums.ParseContentKind(parts[2])
	if !ok {
		return a.bot.AnswerCallback(ctx, update.CallbackID, "Unknown kind")
	}
	contentID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || contentID <= 0 {
		return a.bot.AnswerCallback(ctx, update.CallbackID, "Invalid item id")
	}

	switch parts[1] {
	case "approve":
		if _, err := a.moderationService.Approve(ctx, kind, contentID, moderatorID, ""); err != nil {
			return a.bot.AnswerCallback(ctx, update.CallbackID, "Approve failed")
		}
		if err := a.bot.AnswerCallback(ctx, update.CallbackID, "Approved"); err != nil {
			return err
		}
		return a.bot.SendText(ctx, update.ChatID, decisionReply(enums.ContentStatusApproved, nil))
	case "reject":
		a.rejectMu.Lock()
		a.rejectByChat[update.ChatID] = rejectState{
			Kind:        kind,
			ContentID:   contentID,
			ModeratorID: moderatorID,
		}
		a.rejectMu.Unlock()
		if err := a.bot.AnswerCallback(ctx, update.CallbackID, "Send reason text"); err != nil {
			return err
		}
		return a.bot.SendText(ctx, update.ChatID, "Send the rejection reason as a message.")
	default:
		return a.bot.AnswerCallback(ctx, update.CallbackID, "Unknown action")
	}
}

func (a *App) handleText(ctx context.Context, update tginfra.TextUpdate) error {
	if a.bot == nil {
		return nil
	}

	moderatorID, ok := a.moderatorID(update.UserID)
	if !ok {
		return nil
	}

	a.rejectMu.Lock()
	state, ok := a.rejectByChat[update.ChatID]
	a.rejectMu.Unlock()
	if !ok || state.ModeratorID != moderatorID {
		return nil
	}

	reason := strings.TrimSpace(update.Text)
	if reason == "" {
		return a.bot.SendText(ctx, update.ChatID, "The reason cannot be empty.")
	}

	_, err := a.moderationService.Reject(ctx, state.Kind, state.ContentID, moderatorID, reason)

	a.rejectMu.Lock()
	delete(a.rejectByChat, update.ChatID)
	a.rejectMu.Unlock()

	return a.bot.SendText(ctx, update.ChatID, decisionReply(enums.ContentStatusRejected, err))
}

func decisionReply(target enums.ContentStatus, err error) string {
	switch {
	case err == nil:
		if target == enums.ContentStatusApproved {
			return "Approved."
		}
		return "Rejected."
	case errors.Is(err, modsvc.ErrContentNotFound):
		return "Content not found."
	case errors.Is(err, modsvc.ErrAlreadyModerated):
		return "Content was already moderated."
	case errors.Is(err, modsvc.ErrReasonRequired):
		return "A rejection reason is required."
	default:
		if target == enums.ContentStatusApproved {
			return "Approve failed."
		}
		return "Reject failed."
	}
}

func formatQueueMessage(kind enums.ContentKind, item modsvc.QueueItem) string {
	lines := []string{
		fmt.Sprintf("Pending %s #%d", kind, item.ID),
		fmt.Sprintf("Author ID: %d", item.AuthorID),
		fmt.Sprintf("Title: %s", item.Title),
		fmt.Sprintf("Created: %s", item.CreatedAt.UTC().Format(time.RFC3339)),
		"",
		"Images:",
	}

	if len(item.ImageURLs) == 0 {
		lines = append(lines, "- none")
	} else {
		for i, u := range item.ImageURLs {
			lines = append(lines, fmt.Sprintf("- image_%d: %s", i+1, u))
		}
	}

	return strings.Join(lines, "\n")
}

func (a *App) Close() {
	if a.postgres != nil {
		a.postgres.Close()
	}
}
