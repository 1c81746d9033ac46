package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/internal/review"
	"github.com/example/qreview/internal/session"
	"github.com/example/qreview/internal/spaced_repetition"
	"github.com/example/qreview/pkg/models"
)

var (
	reviewSubject  string
	reviewType     string
	reviewLimit    int
	reviewPractice bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a review session",
	Long: `Start a review session over the questions currently due.
Each question is presented, the answer revealed on request, and recall is
rated 0-5 (or "m" for "I have fully mastered this"). Updates are written
in one batch when the session completes; quitting early persists nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := parseSubjectFlag(reviewSubject)
		if err != nil {
			return err
		}
		qType, err := parseTypeFlag(reviewType)
		if err != nil {
			return err
		}

		questionRepo := database.NewQuestionRepository()
		questions, err := questionRepo.GetAll()
		if err != nil {
			return err
		}

		opts := review.PoolOptions{Subject: subject, Type: qType, Limit: reviewLimit}
		var pool []models.Question
		if reviewPractice {
			pool = review.PracticePool(questions, opts)
		} else {
			pool = review.DuePool(questions, time.Now(), opts)
		}

		sess := session.New(pool, review.PoolLabel(opts, reviewPractice))
		if sess.Empty() {
			fmt.Println("Nothing to review. All caught up.")
			return nil
		}

		reader := bufio.NewReader(os.Stdin)
		for !sess.Finished() {
			q, err := sess.Current()
			if err != nil {
				return err
			}
			pos, total := sess.Progress()

			fmt.Println("\n========================================")
			fmt.Printf("[%d/%d] %s | %s", pos, total, review.SubjectTitle(q.Subject), typeTitle(q.Type))
			if q.IsFromExample {
				fmt.Print(" (was a worked example)")
			}
			fmt.Println()
			if len(q.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(q.Tags, ", "))
			}
			fmt.Println("========================================")
			fmt.Println(q.Content)
			fmt.Print("\nPress Enter to reveal the answer... ")
			if _, err := reader.ReadString('\n'); err != nil {
				fmt.Println("\nSession abandoned, nothing saved.")
				return nil
			}

			q, err = sess.Reveal()
			if err != nil {
				return err
			}
			fmt.Println("\n--- Answer ---")
			if q.Answer != "" {
				fmt.Println(q.Answer)
			} else {
				fmt.Println("(no answer recorded)")
			}
			if q.Analysis != "" {
				fmt.Println("\n--- Analysis ---")
				fmt.Println(q.Analysis)
			}

			if err := promptAndRate(sess, q, reader); err != nil {
				if errors.Is(err, errAbandoned) {
					fmt.Println("Session abandoned, nothing saved.")
					return nil
				}
				return err
			}
		}

		return commitSession(sess, questionRepo, questions)
	},
}

var errAbandoned = errors.New("abandoned")

// promptAndRate reads ratings until one is accepted by the session.
func promptAndRate(sess *session.Session, q *models.Question, reader *bufio.Reader) error {
	for {
		if q.Type == models.TypeWorkedExample {
			fmt.Print("\nRate recall (0-5, 1 converts to missed problem, m = fully mastered, q = quit): ")
		} else {
			fmt.Print("\nRate recall (0-5, m = fully mastered, q = quit): ")
		}
		input, err := reader.ReadString('\n')
		if err != nil {
			return errAbandoned
		}
		input = strings.TrimSpace(input)

		var quality spaced_repetition.QualityResponse
		switch input {
		case "q":
			return errAbandoned
		case "m":
			quality = spaced_repetition.QualityFullMastery
		default:
			n, err := strconv.Atoi(input)
			if err != nil {
				fmt.Println("Enter a number 0-5, m, or q.")
				continue
			}
			quality = spaced_repetition.QualityResponse(n)
		}

		_, _, err = sess.Rate(quality)
		if errors.Is(err, spaced_repetition.ErrInvalidQuality) {
			fmt.Println("Ratings run from 0 (blackout) to 5 (perfect).")
			continue
		}
		return err
	}
}

// commitSession applies the results, batch-writes the store and appends one
// review log.
func commitSession(sess *session.Session, repo *database.QuestionRepository, questions []models.Question) error {
	results, err := sess.Results()
	if err != nil {
		return err
	}

	now := time.Now()
	updated := review.ApplyResults(questions, results, now)
	if err := repo.UpdateBatch(updated); err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}

	logEntry := review.NewLog(uuid.NewString(), sess.Label(), len(results), now)
	if err := database.NewReviewLogRepository().Create(&logEntry); err != nil {
		return fmt.Errorf("failed to record session log: %v", err)
	}

	fmt.Printf("\nSession complete: %d question(s) reviewed (%s).\n", len(results), sess.Label())
	for _, r := range results {
		fmt.Printf("  %s -> next review in %d day(s)\n", r.QuestionID[:8], r.IntervalDays)
	}
	return nil
}

func typeTitle(t models.QuestionType) string {
	if t == models.TypeWorkedExample {
		return "Worked Example"
	}
	return "Missed Problem"
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().StringVarP(&reviewSubject, "subject", "s", "", "Limit to one subject")
	reviewCmd.Flags().StringVarP(&reviewType, "type", "t", "", "Limit to one type (example drills ignore due dates)")
	reviewCmd.Flags().IntVarP(&reviewLimit, "limit", "n", 0, "Cap the session size")
	reviewCmd.Flags().BoolVarP(&reviewPractice, "practice", "p", false, "Random practice over all questions, mastered included")
}
