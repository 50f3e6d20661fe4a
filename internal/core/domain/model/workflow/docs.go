// Package workflow provides the definition side of order processing: the Workflow
// aggregate, its ordered Steps, the Actions run when a step is entered and the
// Notifications dispatched alongside them.
//
// The package includes:
//   - Workflow: a named, optionally default, sequence of steps
//   - Step: one stage bound to an external order status, with guards, actions and an approval requirement
//   - Action: a typed side effect with free-form parameters
//   - Notification: a message handed to the notification collaborator on step entry
//   - Assignment: the link between an order and the workflow that governs it
//
// Key business rules:
//   - Step order values are positive and unique within a workflow
//   - Every step is bound to a non-empty status name
//   - At most one workflow is the default; the store clears the flag on the others
//   - A default workflow cannot be deleted
package workflow
