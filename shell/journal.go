package shell

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/book-inventory-go/core"
	"github.com/AntonStoeckl/book-inventory-go/inventory"
)

const (
	journalFilePermissions = 0o644
	maxJournalLineBytes    = 1024 * 1024

	logMsgEventJournaled = "domain event journaled"
	logAttrEventType     = "event_type"
	logAttrMessageID     = "message_id"
	logAttrPath          = "path"
)

// ErrJournalOpenFailed is returned when the journal file can't be opened for appending.
var ErrJournalOpenFailed = errors.New("opening journal failed")

// ErrJournalWriteFailed is returned when an entry can't be appended to the journal.
var ErrJournalWriteFailed = errors.New("writing to journal failed")

// ErrJournalReadFailed is returned when the journal file can't be read back.
var ErrJournalReadFailed = errors.New("reading journal failed")

// ErrJournalClosed is returned when recording into a journal that was closed already.
var ErrJournalClosed = errors.New("journal is closed")

var _ inventory.EventRecorder = (*FileJournal)(nil)

// FileJournal appends domain events as JSON lines to a file.
//
// Every line is one JournalEntry. All events recorded by one FileJournal share the same CorrelationID,
// each event is its own cause. FileJournal is safe for concurrent use.
type FileJournal struct {
	path          string
	file          *os.File
	clock         inventory.Clock
	correlationID uuid.UUID
	logger        inventory.Logger
	mu            sync.Mutex
}

// JournalOption configures a FileJournal.
type JournalOption func(*FileJournal) error

// WithJournalClock sets the Clock which stamps RecordedAt, it defaults to the system clock.
func WithJournalClock(clock inventory.Clock) JournalOption {
	return func(j *FileJournal) error {
		if clock == nil {
			return fmt.Errorf("%w: clock must not be nil", inventory.ErrInvalidArgument)
		}

		j.clock = clock

		return nil
	}
}

// WithCorrelationID sets the CorrelationID of all recorded events, it defaults to a fresh UUIDv7.
func WithCorrelationID(correlationID uuid.UUID) JournalOption {
	return func(j *FileJournal) error {
		if correlationID == uuid.Nil {
			return fmt.Errorf("%w: correlation id must not be nil", inventory.ErrInvalidArgument)
		}

		j.correlationID = correlationID

		return nil
	}
}

// WithJournalLogger sets the logger, which reports every journaled event at debug level.
func WithJournalLogger(logger inventory.Logger) JournalOption {
	return func(j *FileJournal) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", inventory.ErrInvalidArgument)
		}

		j.logger = logger

		return nil
	}
}

// OpenFileJournal opens or creates the journal file at path for appending.
// The caller must Close the returned FileJournal.
func OpenFileJournal(path string, options ...JournalOption) (*FileJournal, error) {
	correlationID, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Join(ErrJournalOpenFailed, err)
	}

	journal := &FileJournal{
		path:          path,
		clock:         inventory.SystemClock{},
		correlationID: correlationID,
		logger:        slog.Default(),
	}

	for _, option := range options {
		if err = option(journal); err != nil {
			return nil, err
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, journalFilePermissions)
	if err != nil {
		return nil, errors.Join(ErrJournalOpenFailed, err)
	}

	journal.file = file

	return journal, nil
}

// Path returns the path of the journal file.
func (j *FileJournal) Path() string {
	return j.path
}

// CorrelationID returns the CorrelationID shared by all events of this journal.
func (j *FileJournal) CorrelationID() CorrelationID {
	return j.correlationID.String()
}

// Record implements inventory.EventRecorder by appending the event as one line.
func (j *FileJournal) Record(event core.DomainEvent) error {
	messageID, err := uuid.NewV7()
	if err != nil {
		return errors.Join(ErrJournalWriteFailed, err)
	}

	entry, err := JournalEntryFrom(event, BuildEventMetadata(messageID, messageID, j.correlationID), j.clock.Now())
	if err != nil {
		return errors.Join(ErrJournalWriteFailed, err)
	}

	line, err := jsoniter.ConfigFastest.Marshal(entry)
	if err != nil {
		return errors.Join(ErrJournalWriteFailed, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return ErrJournalClosed
	}

	if _, err = j.file.Write(append(line, '\n')); err != nil {
		return errors.Join(ErrJournalWriteFailed, err)
	}

	j.logger.Debug(
		logMsgEventJournaled,
		logAttrEventType, entry.EventType,
		logAttrMessageID, entry.Metadata.MessageID,
		logAttrPath, j.path,
	)

	return nil
}

// Close closes the journal file. Closing twice is a no-op.
func (j *FileJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	err := j.file.Close()
	j.file = nil

	if err != nil {
		return errors.Join(ErrJournalWriteFailed, err)
	}

	return nil
}

// ReadJournal reads all entries of the journal file at path in the order they were written.
// Empty lines are skipped.
func ReadJournal(path string) (JournalEntries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrJournalReadFailed, err)
	}
	defer func() { _ = file.Close() }()

	entries := make(JournalEntries, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxJournalLineBytes)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := []byte(scanner.Text())
		if len(line) == 0 {
			continue
		}

		entry := JournalEntry{}
		if err = jsoniter.ConfigFastest.Unmarshal(line, &entry); err != nil {
			return nil, errors.Join(ErrJournalReadFailed, fmt.Errorf("line %d: %w", lineNumber, err))
		}

		entries = append(entries, entry)
	}

	if err = scanner.Err(); err != nil {
		return nil, errors.Join(ErrJournalReadFailed, err)
	}

	return entries, nil
}
