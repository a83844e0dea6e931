package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"pms/internal/domain/directory"
	"pms/internal/domain/performance"
)

type Directory interface {
	Get(ctx context.Context, id string) (directory.User, error)
	Reviewers(ctx context.Context, department string) ([]directory.User, error)
}

type audience int

const (
	audienceNone audience = iota
	audienceOwner
	audiencePMs
	audienceReviewers
	audienceCTOsAndOwner
)

// Notifier turns performance transitions into notifications for the owner
// or the reviewers of the owner's department.
type Notifier struct {
	service   *Service
	directory Directory
}

func NewNotifier(service *Service, dir Directory) *Notifier {
	return &Notifier{service: service, directory: dir}
}

func (n *Notifier) OnTransition(ctx context.Context, event performance.TransitionEvent) error {
	msg, who := plan(event)
	if who == audienceNone {
		return nil
	}

	owner, err := n.directory.Get(ctx, event.OwnerID)
	if err != nil {
		return fmt.Errorf("notify %s %s: %w", event.Entity, event.RecordID, err)
	}
	var reviewers []directory.User
	if who != audienceOwner {
		reviewers, err = n.directory.Reviewers(ctx, owner.Department)
		if err != nil {
			return fmt.Errorf("notify %s %s: %w", event.Entity, event.RecordID, err)
		}
	}

	for _, userID := range recipients(who, event.Actor.ID, owner, reviewers) {
		if err := n.service.Create(ctx, userID, msg); err != nil {
			slog.Warn("notification create failed", "userId", userID, "type", msg.Type, "err", err)
		}
	}
	return nil
}

// plan decides what, if anything, a transition announces and to whom.
func plan(event performance.TransitionEvent) (Message, audience) {
	msg := Message{EntityType: string(event.Entity), EntityID: event.RecordID}
	switch event.Entity {
	case performance.EntityContract:
		switch event.Action {
		case performance.ActionSubmit:
			msg.Type, msg.Title = TypeContractSubmitted, "Performance contract submitted"
			msg.Body = "A performance contract is waiting for review."
			return msg, audienceReviewers
		case performance.ActionApprove:
			msg.Type, msg.Title = TypeContractApproved, "Performance contract approved"
			msg.Body = "Your performance contract was approved."
			return msg, audienceOwner
		case performance.ActionReturn:
			msg.Type, msg.Title = TypeContractReturned, "Performance contract returned"
			msg.Body = "Your performance contract was returned for changes."
			return msg, audienceOwner
		}
	case performance.EntityMonthlyReview:
		if event.Action == performance.ActionSubmit {
			msg.Type, msg.Title = TypeMonthlyReviewSubmitted, "Monthly review submitted"
			msg.Body = "A monthly review was submitted."
			return msg, audiencePMs
		}
	case performance.EntityAppraisal:
		switch {
		case event.Action == performance.ActionSubmit:
			msg.Type, msg.Title = TypeAppraisalSubmitted, "Appraisal submitted"
			msg.Body = "An annual appraisal is waiting for PM review."
			return msg, audiencePMs
		case event.To == string(performance.AppraisalStatusReturned):
			msg.Type, msg.Title = TypeAppraisalReturned, "Appraisal returned"
			msg.Body = "Your annual appraisal was returned for changes."
			return msg, audienceOwner
		case event.To == string(performance.AppraisalStatusApprovedByPM) && event.Action == performance.ActionPMReview:
			msg.Type, msg.Title = TypeAppraisalApprovedByPM, "Appraisal approved by PM"
			msg.Body = "An annual appraisal is waiting for CTO review."
			return msg, audienceCTOsAndOwner
		case event.To == string(performance.AppraisalStatusCertified) && event.Action == performance.ActionCTOReview:
			msg.Type, msg.Title = TypeAppraisalCertified, "Appraisal certified"
			msg.Body = "Your annual appraisal was certified."
			return msg, audienceOwner
		}
	}
	return Message{}, audienceNone
}

// recipients never includes the actor who caused the transition.
func recipients(who audience, actorID string, owner directory.User, reviewers []directory.User) []string {
	var out []string
	seen := map[string]struct{}{actorID: {}}
	add := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	switch who {
	case audienceOwner:
		add(owner.ID)
	case audiencePMs:
		for _, user := range reviewers {
			if user.Role == performance.RolePM {
				add(user.ID)
			}
		}
	case audienceReviewers:
		for _, user := range reviewers {
			add(user.ID)
		}
	case audienceCTOsAndOwner:
		for _, user := range reviewers {
			if user.Role == performance.RoleCTO {
				add(user.ID)
			}
		}
		add(owner.ID)
	}
	return out
}
