package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"tempo/config"
	policyRepo "tempo/database/repository/policy"
	"tempo/models"
	"tempo/services/mailer"
	"tempo/services/schedule"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeDigestSend = "digest:send"

// InitDigestWorker runs the async digest worker in background.
func InitDigestWorker(schedSvc schedule.ScheduleService, policies policyRepo.PolicyRepository, mail mailer.Mailer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeDigestSend, handleDigestTask(schedSvc, policies, mail))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[DigestWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DigestWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DigestWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleDigestTask(schedSvc schedule.ScheduleService, policies policyRepo.PolicyRepository, mail mailer.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.DigestPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[DigestHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		policy := models.DefaultUserPolicy()
		if rec, err := policies.GetByUserID(p.UserID); err != nil {
			log.Printf("[DigestHandler] ⚠️ Failed to load policy for %s, using default: %v", p.UserID, err)
		} else if rec != nil {
			policy = rec.Policy
		}

		loc, err := time.LoadLocation(policy.Timezone)
		if err != nil {
			loc = time.UTC
		}
		today, _ := schedule.PeriodRange(time.Now(), models.PeriodDay, loc)

		days, err := schedSvc.DaySchedules(ctx, p.UserID, today, today, policy)
		if err != nil {
			log.Printf("[DigestHandler] ❌ Failed to build schedule for %s: %v", p.UserID, err)
			return err
		}
		recs, err := schedSvc.Recommendations(ctx, p.UserID, policy)
		if err != nil {
			log.Printf("[DigestHandler] ⚠️ Recommendations unavailable for %s: %v", p.UserID, err)
			recs = nil
		}

		msg := mailer.Message{
			To:      p.Email,
			Subject: "Your schedule for " + today.Format("Monday, Jan 2"),
			Body:    renderDigest(days, recs),
		}
		if err := mail.Send(ctx, p.UserID, msg); err != nil {
			log.Printf("[DigestHandler] ❌ Failed to send digest to %s: %v", p.Email, err)
			return err
		}

		log.Printf("[DigestHandler] 📬 Digest sent to %s", p.Email)
		return nil
	}
}

// renderDigest produces the plain-text body of a daily digest email.
func renderDigest(days []models.DaySchedule, recs []models.Recommendation) string {
	var b strings.Builder

	for _, day := range days {
		if len(day.Events) == 0 {
			b.WriteString("No events on your calendar today. 🎉\n")
			continue
		}
		b.WriteString("Today's events:\n")
		for _, ev := range day.Events {
			if ev.AllDay {
				b.WriteString(fmt.Sprintf("  all day  %s\n", ev.Title))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s-%s  %s\n", ev.Start.Format("15:04"), ev.End.Format("15:04"), ev.Title))
		}
		b.WriteString(fmt.Sprintf("\nMeetings: %dm, focus: %dm, open: %dm\n",
			day.Stats.MeetingMinutes, day.Stats.FocusMinutes, day.Stats.AvailableMinutes))
	}

	if len(recs) > 0 {
		b.WriteString("\nSuggestions for your week:\n")
		for _, r := range recs {
			b.WriteString("  - " + r.Title + ": " + r.Description + "\n")
		}
	}
	return b.String()
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[DigestWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
