package scheduler

import (
	"log"
	"time"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/internal/review"
	"github.com/go-co-op/gocron"

	"github.com/example/qreview/pkg/models"
)

// Notifier is the channel due-review reminders are sent through.
type Notifier interface {
	SendDueReminder(total int, bySubject map[models.Subject]int) error
}

// Scheduler runs the periodic due-question check and pushes reminders.
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	startHour int
	endHour   int
}

// New creates a scheduler that reminds through the given notifier, only
// between startHour and endHour (inclusive, local hours).
func New(notifier Notifier, startHour, endHour int) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		notifier:  notifier,
		startHour: startHour,
		endHour:   endHour,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder counts due questions and sends one reminder when any
// exist and the current hour is inside the notification window.
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()
	if currentHour < s.startHour || currentHour > s.endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, s.startHour, s.endHour)
		return
	}

	if err := s.RunManualCheck(); err != nil {
		log.Printf("Error sending due reminder: %v", err)
	}
}

// RunManualCheck forces a due check and reminder, regardless of the window.
func (s *Scheduler) RunManualCheck() error {
	questionRepo := database.NewQuestionRepository()
	questions, err := questionRepo.GetAll()
	if err != nil {
		return err
	}

	now := time.Now()
	bySubject := review.DueBySubject(questions, now)
	total := 0
	for _, count := range bySubject {
		total += count
	}
	if total == 0 {
		return nil
	}

	return s.notifier.SendDueReminder(total, bySubject)
}
