// Package notifier напоминает владельцу по SMS, что срок годности продукта подходит к концу.
//
// Каждый продукт проходит путь unscheduled → armed (notify_at задан) → fired (notified=true).
// Срабатывание только через периодический обход, поэтому перезапуск сервера ничего не теряет.
package notifier

import (
	"Fridgella/internal/model"
	"Fridgella/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultLead     = 24 * time.Hour
	DefaultInterval = time.Minute
	DefaultBatch    = 100
)

// RetryDelay на сколько откладывается продукт, который обход не смог обработать из-за ошибки БД
const RetryDelay = 15 * time.Minute

// Message текст напоминания
func Message(it *model.Item) string {
	date := ""
	if it.ExpiryDate != nil {
		date = it.ExpiryDate.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("Reminder: your %s (qty %d) expires on %s. — Fridgella", it.Name, it.Quantity, date)
}

// SweepResult итоги одного обхода
type SweepResult struct {
	Due     int
	Sent    int
	Failed  int
	Skipped int
}

// Engine планирует и выполняет проверки сроков годности
type Engine struct {
	items  repo.ItemRepository
	users  repo.UserRepository
	jobs   repo.NotificationRepository
	sender Sender
	logger *zap.SugaredLogger

	lead        time.Duration
	batch       int
	countryCode string
	now         func() time.Time
}

func NewEngine(
	items repo.ItemRepository,
	users repo.UserRepository,
	jobs repo.NotificationRepository,
	sender Sender,
	logger *zap.SugaredLogger,
) *Engine {
	return &Engine{
		items:  items,
		users:  users,
		jobs:   jobs,
		sender: sender,
		logger: logger,
		lead:   DefaultLead,
		batch:  DefaultBatch,
		now:    time.Now,
	}
}

// WithLead за сколько до истечения срока отправлять напоминание
func (e *Engine) WithLead(d time.Duration) *Engine {
	if d > 0 {
		e.lead = d
	}
	return e
}

// WithBatch сколько продуктов берёт один обход
func (e *Engine) WithBatch(n int) *Engine {
	if n > 0 {
		e.batch = n
	}
	return e
}

// WithCountryCode код страны для номеров без "+"
func (e *Engine) WithCountryCode(cc string) *Engine {
	e.countryCode = cc
	return e
}

// ScheduleExpiryCheck выставляет notify_at = expiry - lead.
// Без срока, с notified=true или с уже прошедшим сроком продукт не планируется
func (e *Engine) ScheduleExpiryCheck(it *model.Item) {
	it.NotifyAt = nil
	if it.ExpiryDate == nil || it.Notified {
		return
	}
	exp := it.ExpiryDate.UTC()
	if !exp.After(e.now().UTC()) {
		return
	}
	at := exp.Add(-e.lead)
	it.NotifyAt = &at
}

// Sweep обрабатывает все созревшие продукты. Ошибка по одному продукту не мешает остальным
func (e *Engine) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	var res SweepResult
	due, err := e.items.ListDue(ctx, now.UTC(), e.batch)
	if err != nil {
		return res, fmt.Errorf("list due items: %w", err)
	}
	res.Due = len(due)

	for i := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		switch e.fire(ctx, &due[i], now) {
		case outcomeSent:
			res.Sent++
		case outcomeFailed:
			res.Failed++
		default:
			res.Skipped++
		}
	}
	if res.Due > 0 {
		e.logger.Infow("expiry sweep done", "due", res.Due, "sent", res.Sent, "failed", res.Failed, "skipped", res.Skipped)
	}
	return res, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSent
	outcomeFailed
)

// fire отправляет напоминание по одному продукту. it прочитан до захвата и может устареть,
// поэтому текст строится из записи, перечитанной в Claim
func (e *Engine) fire(ctx context.Context, it *model.Item, now time.Time) outcome {
	user, err := e.users.GetUserByID(ctx, it.UserID)
	if err != nil {
		e.logger.Errorw("notify: owner lookup failed", "item_id", it.ID, "user_id", it.UserID, "error", err)
		if repo.IsNotFound(err) {
			e.postpone(ctx, it, now, nil)
		} else {
			e.postpone(ctx, it, now, timeAt(now.Add(RetryDelay)))
		}
		return outcomeSkipped
	}

	// без телефона снимаем с расписания, иначе продукт будет выбираться каждый обход
	if !user.HasPhone() {
		e.postpone(ctx, it, now, nil)
		return outcomeSkipped
	}

	phone := NormalizePhone(*user.Phone, e.countryCode)
	job, err := e.jobs.Claim(ctx, it.ID, now, phone, Message)
	if err != nil {
		if !errors.Is(err, repo.ErrClaimLost) {
			e.logger.Errorw("notify: claim failed", "item_id", it.ID, "error", err)
			e.postpone(ctx, it, now, timeAt(now.Add(RetryDelay)))
		}
		return outcomeSkipped
	}

	if err := e.sender.Send(ctx, phone, job.Message); err != nil {
		e.logger.Warnw("notify: sms failed", "item_id", it.ID, "notification_id", job.ID, "error", err)
		if mErr := e.jobs.MarkFailed(ctx, job.ID, err.Error()); mErr != nil {
			e.logger.Errorw("notify: mark failed", "notification_id", job.ID, "error", mErr)
		}
		return outcomeFailed
	}

	if err := e.jobs.MarkSent(ctx, job.ID, e.now()); err != nil {
		e.logger.Errorw("notify: mark sent", "notification_id", job.ID, "error", err)
	}
	return outcomeSent
}

// postpone убирает продукт из головы очереди, чтобы он не занимал пачку следующих обходов
func (e *Engine) postpone(ctx context.Context, it *model.Item, now time.Time, until *time.Time) {
	if err := e.jobs.Postpone(ctx, it.ID, now, until); err != nil {
		e.logger.Errorw("notify: postpone failed", "item_id", it.ID, "error", err)
	}
}

func timeAt(t time.Time) *time.Time { return &t }

// Start запускает периодический обход в фоне; первый обход сразу.
// Возвращаемый канал закрывается после остановки по ctx
func (e *Engine) Start(ctx context.Context, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = DefaultInterval
	}
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()

		e.runSweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.runSweep(ctx)
			}
		}
	}()
	return done
}

func (e *Engine) runSweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := e.Sweep(ctx, e.now()); err != nil && !errors.Is(err, context.Canceled) {
		e.logger.Errorw("expiry sweep failed", "error", err)
	}
}
