package bot

import (
	"fmt"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

// StartDailyReport по расписанию отправляет сводку очков в чат
func (b *Bot) StartDailyReport(schedule string, chatID int64) (*cron.Cron, error) {
	c := cron.New()
	err := c.AddFunc(schedule, func() {
		b.sendDailyReport(chatID)
	})
	if err != nil {
		return nil, fmt.Errorf("неверное расписание %q: %w", schedule, err)
	}
	c.Start()

	log.Infof("ежедневная сводка в чат %d по расписанию %q", chatID, schedule)
	return c, nil
}

func (b *Bot) sendDailyReport(chatID int64) {
	ctx, cancel := storeContext()
	defer cancel()

	v := b.tracker.Dashboard(ctx)
	if v.Empty() && !v.Degraded {
		log.Debug("записей нет, сводка не отправлена")
		return
	}
	b.sendMessage(chatID, "☀️ Сводка за день\n\n"+formatDashboard(v))
}
