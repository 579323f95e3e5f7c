// Package ledger implements the tamper-evident audit chain: hash
// computation, serialized per-tenant appends, and chain verification.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"marketbook/internal/models"
)

// SentinelHash is the previous-hash value of the first entry in a tenant's
// chain.
const SentinelHash = ""

// hashTimeLayout is the canonical timestamp encoding: UTC ISO-8601 with
// fixed millisecond precision. Entries are stamped at millisecond precision
// (see ChainWriter) so the canonical form survives a round trip through
// both Postgres (microsecond columns) and SQLite (text columns).
const hashTimeLayout = "2006-01-02T15:04:05.000Z"

// ComputeHash returns the SHA-256 hex digest of the entry's canonical
// serialization chained to previousHash. Every field except HashValue
// participates, in a fixed order, so the same logical entry always hashes
// identically. Pure function: no I/O, no clock, no state.
func ComputeHash(e *models.AuditEntry, previousHash string) string {
	var b strings.Builder
	for _, field := range []string{
		e.ID,
		e.TenantID,
		e.Timestamp.UTC().Format(hashTimeLayout),
		e.ActorEmail,
		string(e.Action),
		e.ResourceType,
		e.ResourceID,
		e.BeforeState,
		e.AfterState,
		strconv.FormatBool(e.IsSensitive),
		e.RequestContext,
		previousHash,
	} {
		// Length-prefix each field so adjacent fields cannot be reassembled
		// into the same byte stream ("ab","c" vs "a","bc").
		b.WriteString(strconv.Itoa(len(field)))
		b.WriteByte(':')
		b.WriteString(field)
		b.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
