package mapping

import (
	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/gjovanov/tickytack/internal/models"
)

// ToModelJournalEntry splits a domain entry into its header row and numbered line rows.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, []models.JournalEntryLine) {
	entry := models.JournalEntry{
		EntryID:     d.EntryID,
		OrgID:       d.OrgID,
		EntryNumber: d.EntryNumber,
		EntryDate:   d.Date,
		Description: d.Description,
		Reference:   nullable(d.Reference),
		Status:      models.EntryStatus(d.Status),
		PostedAt:    d.PostedAt,
		VoidedAt:    d.VoidedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.JournalEntryLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalEntryLine{
			EntryID:     d.EntryID,
			LineNo:      i + 1,
			AccountID:   l.AccountID,
			Description: nullable(l.Description),
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return entry, lines
}

// ToDomainJournalEntry joins a header row with its line rows, which must already be in line order.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:     m.EntryID,
		OrgID:       m.OrgID,
		EntryNumber: m.EntryNumber,
		Date:        m.EntryDate,
		Description: m.Description,
		Reference:   fromNullable(m.Reference),
		Status:      domain.EntryStatus(m.Status),
		PostedAt:    m.PostedAt,
		VoidedAt:    m.VoidedAt,
		Lines:       make([]domain.JournalEntryLine, len(lines)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		d.Lines[i] = domain.JournalEntryLine{
			AccountID:   l.AccountID,
			Description: fromNullable(l.Description),
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return d
}
