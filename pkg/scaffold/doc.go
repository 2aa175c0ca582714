// Package scaffold writes the starter configuration and stylesheet used by
// `barkeep init`.
package scaffold
