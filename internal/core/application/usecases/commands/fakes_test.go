package commands_test

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/fulfillment"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// world is an in-memory stand-in for the database, the order store and the
// collaborators. Repositories hand out copies so handlers only change state through
// explicit writes.
type world struct {
	mu sync.Mutex

	orders       map[kernel.UUID]order.SnapshotParams
	priorities   map[kernel.UUID]int
	customFields map[kernel.UUID]map[string]string
	workflows    map[kernel.UUID]*workflow.Workflow
	steps        map[kernel.UUID]*workflow.Step
	assignments  map[kernel.UUID]workflow.Assignment
	approvals    map[kernel.UUID]*approval.Approval
	rules        map[kernel.UUID]*automation.Rule
	tags         map[string]kernel.UUID
	orderTags    map[kernel.UUID][]kernel.UUID
	fulfillments []fulfillment.Fulfillment
	history      []history.Entry
	logs         []automation.Log
	audit        []string
	sent         []sentNotification
	allocated    []kernel.UUID

	statusWriteErr error
	orderReadErr   error
}

type sentNotification struct {
	Recipient string
	Template  string
	Data      map[string]any
}

func newWorld() *world {
	return &world{
		orders:       map[kernel.UUID]order.SnapshotParams{},
		priorities:   map[kernel.UUID]int{},
		customFields: map[kernel.UUID]map[string]string{},
		workflows:    map[kernel.UUID]*workflow.Workflow{},
		steps:        map[kernel.UUID]*workflow.Step{},
		assignments:  map[kernel.UUID]workflow.Assignment{},
		approvals:    map[kernel.UUID]*approval.Approval{},
		rules:        map[kernel.UUID]*automation.Rule{},
		tags:         map[string]kernel.UUID{},
		orderTags:    map[kernel.UUID][]kernel.UUID{},
	}
}

func (w *world) addOrder(p order.SnapshotParams) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.orders[p.ID] = p
}

func (w *world) status(id kernel.UUID) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.orders[id].OrderStatus
}

func (w *world) historyOf(id kernel.UUID) []history.Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []history.Entry
	for _, e := range w.history {
		if e.OrderID == id {
			out = append(out, e)
		}
	}
	return out
}

func (w *world) tagNames(id kernel.UUID) []string {
	names, _ := tagRepo{w}.Names(context.Background(), id)
	return names
}

// Factories for the unit-of-work flavours the handlers ask for.

type uowFactory struct{ w *world }

func (f uowFactory) Create() commands.UoW { return &fakeUoW{w: f.w} }

type workflowUoWFactory struct{ w *world }

func (f workflowUoWFactory) Create() commands.WorkflowUoW { return &fakeUoW{w: f.w} }

type approvalUoWFactory struct{ w *world }

func (f approvalUoWFactory) Create() commands.ApprovalUoW { return &fakeUoW{w: f.w} }

type ruleUoWFactory struct{ w *world }

func (f ruleUoWFactory) Create() commands.RuleUoW { return &fakeUoW{w: f.w} }

type fakeUoW struct {
	w       *world
	begun   bool
	commits int
}

func (u *fakeUoW) Begin(context.Context) error {
	u.begun = true
	return nil
}

func (u *fakeUoW) Commit(context.Context) error {
	if !u.begun {
		return errors.New("commit without begin")
	}
	u.commits++
	u.begun = false
	return nil
}

func (u *fakeUoW) Rollback(context.Context) error {
	u.begun = false
	return nil
}

func (u *fakeUoW) WorkflowRepository() ports.WorkflowRepository       { return workflowRepo{u.w} }
func (u *fakeUoW) StepRepository() ports.StepRepository               { return stepRepo{u.w} }
func (u *fakeUoW) AssignmentRepository() ports.AssignmentRepository   { return assignmentRepo{u.w} }
func (u *fakeUoW) ApprovalRepository() ports.ApprovalRepository       { return approvalRepo{u.w} }
func (u *fakeUoW) RuleRepository() ports.RuleRepository               { return ruleRepo{u.w} }
func (u *fakeUoW) TagRepository() ports.TagRepository                 { return tagRepo{u.w} }
func (u *fakeUoW) FulfillmentRepository() ports.FulfillmentRepository { return fulfillmentRepo{u.w} }

// Workflows and steps.

type workflowRepo struct{ w *world }

func copyWorkflow(wf *workflow.Workflow) *workflow.Workflow {
	c, _ := workflow.RestoreWorkflow(wf.ID(), wf.Name(), wf.Description(), wf.IsDefault(), wf.IsActive(), wf.TriggerConditions())
	return c
}

func (r workflowRepo) Add(_ context.Context, wf *workflow.Workflow) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.workflows[wf.ID()] = copyWorkflow(wf)
	return nil
}

func (r workflowRepo) Update(_ context.Context, wf *workflow.Workflow) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.workflows[wf.ID()]; !ok {
		return errs.NewObjectNotFoundError("workflow", wf.ID())
	}
	r.w.workflows[wf.ID()] = copyWorkflow(wf)
	return nil
}

func (r workflowRepo) Delete(_ context.Context, id kernel.UUID) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.workflows[id]; !ok {
		return errs.NewObjectNotFoundError("workflow", id)
	}
	delete(r.w.workflows, id)
	for sid, s := range r.w.steps {
		if s.WorkflowID() == id {
			delete(r.w.steps, sid)
		}
	}
	return nil
}

func (r workflowRepo) Get(_ context.Context, id kernel.UUID) (*workflow.Workflow, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	wf, ok := r.w.workflows[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("workflow", id)
	}
	return copyWorkflow(wf), nil
}

func (r workflowRepo) List(_ context.Context, filter ports.WorkflowFilter) ([]*workflow.Workflow, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var out []*workflow.Workflow
	for _, wf := range r.w.workflows {
		if filter.Active != nil && wf.IsActive() != *filter.Active {
			continue
		}
		if filter.Default != nil && wf.IsDefault() != *filter.Default {
			continue
		}
		out = append(out, copyWorkflow(wf))
	}
	return out, nil
}

func (r workflowRepo) GetDefault(_ context.Context) (*workflow.Workflow, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	for _, wf := range r.w.workflows {
		if wf.IsDefault() {
			return copyWorkflow(wf), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("default workflow", nil)
}

func (r workflowRepo) ClearDefaultExcept(_ context.Context, keep kernel.UUID) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	for id, wf := range r.w.workflows {
		if id != keep {
			wf.ClearDefault()
		}
	}
	return nil
}

type stepRepo struct{ w *world }

func copyStep(s *workflow.Step) *workflow.Step {
	c, _ := workflow.NewStep(s.ID(), s.WorkflowID(), s.Definition())
	return c
}

func (r stepRepo) Add(_ context.Context, s *workflow.Step) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.steps[s.ID()] = copyStep(s)
	return nil
}

func (r stepRepo) Update(_ context.Context, s *workflow.Step) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.steps[s.ID()]; !ok {
		return errs.NewObjectNotFoundError("workflow step", s.ID())
	}
	r.w.steps[s.ID()] = copyStep(s)
	return nil
}

func (r stepRepo) Delete(_ context.Context, id kernel.UUID) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.steps[id]; !ok {
		return errs.NewObjectNotFoundError("workflow step", id)
	}
	delete(r.w.steps, id)
	return nil
}

func (r stepRepo) Get(_ context.Context, id kernel.UUID) (*workflow.Step, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	s, ok := r.w.steps[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("workflow step", id)
	}
	return copyStep(s), nil
}

func (r stepRepo) ListByWorkflow(_ context.Context, workflowID kernel.UUID) ([]*workflow.Step, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var out []*workflow.Step
	for _, s := range r.w.steps {
		if s.WorkflowID() == workflowID {
			out = append(out, copyStep(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepOrder() < out[j].StepOrder() })
	return out, nil
}

type assignmentRepo struct{ w *world }

func (r assignmentRepo) Upsert(_ context.Context, a workflow.Assignment) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.assignments[a.OrderID] = a
	return nil
}

func (r assignmentRepo) Get(_ context.Context, orderID kernel.UUID) (workflow.Assignment, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	a, ok := r.w.assignments[orderID]
	if !ok || !a.IsActive {
		return workflow.Assignment{}, errs.NewObjectNotFoundError("order workflow", orderID)
	}
	return a, nil
}

// Approvals.

type approvalRepo struct{ w *world }

func copyApproval(a *approval.Approval) *approval.Approval {
	c, _ := approval.RestoreApproval(approval.RestoreParams{
		ID:           a.ID(),
		OrderID:      a.OrderID(),
		StepID:       a.StepID(),
		ApprovalType: a.ApprovalType(),
		ApproverID:   a.ApproverID(),
		Status:       a.Status(),
		Comments:     a.Comments(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	})
	return c
}

func (r approvalRepo) Add(_ context.Context, a *approval.Approval) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.approvals[a.ID()] = copyApproval(a)
	return nil
}

func (r approvalRepo) Update(_ context.Context, a *approval.Approval) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	stored, ok := r.w.approvals[a.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("approval", a.ID())
	}
	if !stored.IsPending() {
		return errs.NewNotPendingError(a.ID().String(), stored.Status().String())
	}
	r.w.approvals[a.ID()] = copyApproval(a)
	return nil
}

func (r approvalRepo) Get(_ context.Context, id kernel.UUID) (*approval.Approval, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	a, ok := r.w.approvals[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("approval", id)
	}
	return copyApproval(a), nil
}

func (r approvalRepo) ListByOrderStep(_ context.Context, orderID, stepID kernel.UUID) ([]*approval.Approval, error) {
	return r.List(context.Background(), ports.ApprovalFilter{OrderID: &orderID, StepID: &stepID})
}

func (r approvalRepo) List(_ context.Context, filter ports.ApprovalFilter) ([]*approval.Approval, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var out []*approval.Approval
	for _, a := range r.w.approvals {
		if filter.OrderID != nil && a.OrderID() != *filter.OrderID {
			continue
		}
		if filter.StepID != nil && a.StepID() != *filter.StepID {
			continue
		}
		if filter.Status != nil && a.Status() != *filter.Status {
			continue
		}
		out = append(out, copyApproval(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

// Automation.

type ruleRepo struct{ w *world }

func (r ruleRepo) Add(_ context.Context, rule *automation.Rule) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.rules[rule.ID()] = rule
	return nil
}

func (r ruleRepo) Update(_ context.Context, rule *automation.Rule) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.rules[rule.ID()]; !ok {
		return errs.NewObjectNotFoundError("automation rule", rule.ID())
	}
	r.w.rules[rule.ID()] = rule
	return nil
}

func (r ruleRepo) Delete(_ context.Context, id kernel.UUID) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.rules[id]; !ok {
		return errs.NewObjectNotFoundError("automation rule", id)
	}
	delete(r.w.rules, id)
	return nil
}

func (r ruleRepo) Get(_ context.Context, id kernel.UUID) (*automation.Rule, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	rule, ok := r.w.rules[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("automation rule", id)
	}
	return rule, nil
}

// List returns rules in map order; the engine sorts them itself.
func (r ruleRepo) List(_ context.Context, activeOnly bool) ([]*automation.Rule, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var out []*automation.Rule
	for _, rule := range r.w.rules {
		if activeOnly && !rule.IsActive() {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

type historyRepo struct{ w *world }

func (r historyRepo) Append(_ context.Context, entry history.Entry) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.history = append(r.w.history, entry)
	return nil
}

func (r historyRepo) ListByOrder(_ context.Context, orderID kernel.UUID) ([]history.Entry, error) {
	return r.w.historyOf(orderID), nil
}

type logRepo struct{ w *world }

func (r logRepo) Append(_ context.Context, log automation.Log) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.logs = append(r.w.logs, log)
	return nil
}

func (r logRepo) List(_ context.Context, _ ports.AutomationLogFilter) ([]automation.Log, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	return append([]automation.Log(nil), r.w.logs...), nil
}

type tagRepo struct{ w *world }

func (r tagRepo) GetOrCreate(_ context.Context, name string) (kernel.UUID, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if id, ok := r.w.tags[name]; ok {
		return id, nil
	}
	id := kernel.NewUUID()
	r.w.tags[name] = id
	return id, nil
}

func (r tagRepo) Attach(_ context.Context, orderID, tagID kernel.UUID) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if slices.Contains(r.w.orderTags[orderID], tagID) {
		return nil
	}
	r.w.orderTags[orderID] = append(r.w.orderTags[orderID], tagID)
	return nil
}

func (r tagRepo) Names(_ context.Context, orderID kernel.UUID) ([]string, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var names []string
	for name, id := range r.w.tags {
		if slices.Contains(r.w.orderTags[orderID], id) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

type fulfillmentRepo struct{ w *world }

func (r fulfillmentRepo) Add(_ context.Context, f fulfillment.Fulfillment) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.fulfillments = append(r.w.fulfillments, f)
	return nil
}

// The commerce order store.

type orderStore struct{ w *world }

func (s orderStore) Get(_ context.Context, id kernel.UUID) (*order.Snapshot, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	if s.w.orderReadErr != nil {
		return nil, s.w.orderReadErr
	}
	p, ok := s.w.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.NewSnapshot(p)
}

func (s orderStore) UpdateStatus(_ context.Context, id kernel.UUID, status string) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	if s.w.statusWriteErr != nil {
		return s.w.statusWriteErr
	}
	p, ok := s.w.orders[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id)
	}
	p.OrderStatus = status
	s.w.orders[id] = p
	return nil
}

func (s orderStore) UpdatePriority(_ context.Context, id kernel.UUID, priority int) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	s.w.priorities[id] = priority
	return nil
}

func (s orderStore) SetCustomField(_ context.Context, id kernel.UUID, key, value string) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	if s.w.customFields[id] == nil {
		s.w.customFields[id] = map[string]string{}
	}
	s.w.customFields[id][key] = value
	return nil
}

func (s orderStore) ListOpenIDs(_ context.Context, excluded []string) ([]kernel.UUID, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var ids []kernel.UUID
	for id, p := range s.w.orders {
		if !slices.Contains(excluded, p.OrderStatus) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Collaborators.

type notifier struct {
	w   *world
	err error
}

func (n notifier) Send(_ context.Context, recipient, templateKey string, data map[string]any) error {
	if n.err != nil {
		return n.err
	}
	n.w.mu.Lock()
	defer n.w.mu.Unlock()
	n.w.sent = append(n.w.sent, sentNotification{Recipient: recipient, Template: templateKey, Data: data})
	return nil
}

type auditSink struct{ w *world }

func (s auditSink) Append(_ context.Context, event string, _ map[string]any) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	s.w.audit = append(s.w.audit, event)
	return nil
}

type inventory struct{ w *world }

func (i inventory) Allocate(_ context.Context, orderID kernel.UUID) error {
	i.w.mu.Lock()
	defer i.w.mu.Unlock()
	i.w.allocated = append(i.w.allocated, orderID)
	return nil
}
