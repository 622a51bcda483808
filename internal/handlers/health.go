package handlers

import (
	"context"
	"time"

	"github.com/arzan03/lingo/internal/utils"
	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 3 * time.Second

// HealthCheck checks one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// healthHandler runs all checks in parallel; any failure turns the response
// into a 503.
func healthHandler(checks []HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		tasks := make([]utils.ParallelTask, len(checks))
		for i, hc := range checks {
			tasks[i] = hc.Check
		}
		errs := utils.RunParallelTasks(ctx, tasks...)

		status, code := "ok", fiber.StatusOK
		results := make(map[string]string, len(checks))
		for i, hc := range checks {
			if errs[i] != nil {
				results[hc.Name] = errs[i].Error()
				status, code = "degraded", fiber.StatusServiceUnavailable
				continue
			}
			results[hc.Name] = "ok"
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "checks": results})
	}
}
