// Package services provides the domain services of order workflow processing:
// stateless rules that span several aggregates.
//
// The package includes:
//   - ConditionEvaluator: loose comparison of order fields against condition operands
//   - ApprovalGate: whether the approvals of a step let an order enter it
//   - TransitionPlanner: current step derivation and forward-only transition planning
package services
