// Package order contains the order aggregate and the closed enumeration of
// workflow states. The aggregate records the state the rest of the system has
// agreed on; the rules for moving between states live in the workflow package.
package order
