// Package kernel provides the shared value objects of the order workflow domain.
//
// The package includes:
//   - UUID: identifier value object for workflows, steps, approvals, rules and orders
//   - Value: tagged union (String | Number | Bool | DateTime | List) used as the operand
//     type of step conditions and automation trigger conditions
//
// Both are immutable and safe for concurrent use.
package kernel
