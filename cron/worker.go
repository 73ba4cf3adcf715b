package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"medibook/config"
	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "reminder:appointment"

// reminderLeadTime is how long before the slot starts the reminder fires.
const reminderLeadTime = time.Hour

// autoCompleteInterval is how often confirmed appointments whose slot has
// passed are swept into the completed state.
const autoCompleteInterval = 15 * time.Minute

func redisQueueOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReminderQueue enqueues appointment reminders onto the async queue.
type ReminderQueue struct {
	client *asynq.Client
}

// NewReminderQueue builds a queue client against the configured Redis.
func NewReminderQueue() *ReminderQueue {
	return &ReminderQueue{client: asynq.NewClient(redisQueueOpts())}
}

// ScheduleReminder queues a reminder to fire shortly before the appointment
// starts. Appointments starting too soon get no reminder.
func (q *ReminderQueue) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	fireAt := appt.StartsAt().Add(-reminderLeadTime)
	if !fireAt.After(time.Now().UTC()) {
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		StartsAt:      appt.StartsAt().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeAppointmentReminder, payload)
	_, err = q.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt), asynq.MaxRetry(3))
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(repo appointmentRepo.AppointmentRepository) {
	srv := asynq.NewServer(
		redisQueueOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentReminder, handleReminderTask(repo))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Sweep past confirmed appointments into completed.
	go runAutoCompleteSweep(repo)

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(repo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		// The booking may have been cancelled since the reminder was queued.
		appt, err := repo.GetByID(ctx, p.AppointmentID, p.DoctorID)
		if err != nil {
			log.Printf("[ReminderHandler] ⚠️ Appointment %s no longer exists, dropping reminder", p.AppointmentID)
			return nil
		}
		if appt.Status != models.StatusConfirmed {
			log.Printf("[ReminderHandler] ⚠️ Appointment %s is %s, dropping reminder", appt.ID, appt.Status)
			return nil
		}

		log.Printf("[ReminderHandler] ⏰ Reminder: patient %s has an appointment with doctor %s at %s",
			appt.PatientID, appt.DoctorID, p.StartsAt)
		return nil
	}
}

// runAutoCompleteSweep periodically marks confirmed appointments whose slot
// time has passed as completed.
func runAutoCompleteSweep(repo appointmentRepo.AppointmentRepository) {
	ticker := time.NewTicker(autoCompleteInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := repo.CompletePastConfirmed(ctx, time.Now().UTC())
		cancel()
		if err != nil {
			log.Printf("[AutoComplete] ❌ Sweep failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("[AutoComplete] ✅ Marked %d past appointments as completed", n)
		}
	}
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
			log.Printf("[ReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
