package portal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PartnerRepository interface {
	EnablePortal(ctx context.Context, id int64, token string) error
}

type Mailer interface {
	SendWelcome(to, name, accessLink string) error
}

// Task provisions portal access for one guest buyer after their order was
// placed.
type Task struct {
	PartnerID int64
	Email     string
	Name      string
}

// Provisioner runs portal provisioning decoupled from the checkout
// request/response lifecycle. Submissions never block checkout and every
// failure lands in the log with the same structured shape; the buyer's
// order is already placed, so nothing here is allowed to propagate.
type Provisioner struct {
	tasks    chan Task
	partners PartnerRepository
	mailer   Mailer
	baseURL  string
	logger   *zap.Logger
}

func NewProvisioner(partners PartnerRepository, mailer Mailer, baseURL string, queueSize int, logger *zap.Logger) *Provisioner {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Provisioner{
		tasks:    make(chan Task, queueSize),
		partners: partners,
		mailer:   mailer,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Enqueue submits a task without blocking. A full queue drops the task and
// logs it; provisioning is a convenience step, never a checkout dependency.
func (p *Provisioner) Enqueue(task Task) {
	select {
	case p.tasks <- task:
	default:
		p.logger.Warn("portal provisioning queue full, task dropped",
			zap.Int64("partnerId", task.PartnerID), zap.String("email", task.Email))
	}
}

// QueueDepth reports the number of pending tasks.
func (p *Provisioner) QueueDepth() int {
	return len(p.tasks)
}

func (p *Provisioner) Run(ctx context.Context) {
	for {
		select {
		case task := <-p.tasks:
			p.provision(ctx, task)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Provisioner) provision(ctx context.Context, task Task) {
	token := uuid.New().String()

	if err := p.partners.EnablePortal(ctx, task.PartnerID, token); err != nil {
		p.logger.Warn("portal provisioning failed",
			zap.Int64("partnerId", task.PartnerID), zap.String("email", task.Email),
			zap.String("step", "enable"), zap.Error(err))
		return
	}

	accessLink := fmt.Sprintf("%s/portal/access?token=%s", p.baseURL, token)
	if err := p.mailer.SendWelcome(task.Email, task.Name, accessLink); err != nil {
		p.logger.Warn("portal provisioning failed",
			zap.Int64("partnerId", task.PartnerID), zap.String("email", task.Email),
			zap.String("step", "welcome-email"), zap.Error(err))
		return
	}

	p.logger.Info("portal account provisioned",
		zap.Int64("partnerId", task.PartnerID), zap.String("email", task.Email))
}
