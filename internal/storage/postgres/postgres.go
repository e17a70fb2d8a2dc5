package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ticketgate/internal/config"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.DB.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.Role.String(), user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *Storage) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1`

	return scanUser(s.DB.QueryRowContext(ctx, query, username))
}

func (s *Storage) UserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = $1`

	return scanUser(s.DB.QueryRowContext(ctx, query, id))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var roleName string

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &roleName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role, err = models.ParseRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored role: %w", err)
	}

	return &user, nil
}

func (s *Storage) CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error) {
	ev.ID = uuid.NewString()
	ev.TicketsSold = 0
	ev.CoOrganizers = nil

	query := `
		INSERT INTO events (id, name, description, date, price, capacity, tickets_sold, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)`

	_, err := s.DB.ExecContext(ctx, query,
		ev.ID, ev.Name, ev.Description, ev.Date, ev.Price, ev.Capacity, ev.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &ev, nil
}

func (s *Storage) Event(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, name, description, date, price, capacity, tickets_sold, created_by
		FROM events
		WHERE id = $1`

	var ev models.Event
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&ev.ID, &ev.Name, &ev.Description, &ev.Date, &ev.Price, &ev.Capacity, &ev.TicketsSold, &ev.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT user_id FROM event_coorganizers WHERE event_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get co-organizers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err = rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan co-organizer: %w", err)
		}
		ev.CoOrganizers = append(ev.CoOrganizers, userID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating co-organizers: %w", err)
	}

	return &ev, nil
}

func (s *Storage) AllEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, name, description, date, price, capacity, tickets_sold, created_by
		FROM events
		ORDER BY date ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	index := make(map[string]int)

	for rows.Next() {
		var ev models.Event
		err = rows.Scan(&ev.ID, &ev.Name, &ev.Description, &ev.Date, &ev.Price, &ev.Capacity, &ev.TicketsSold, &ev.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		index[ev.ID] = len(events)
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	coRows, err := s.DB.QueryContext(ctx, `SELECT event_id, user_id FROM event_coorganizers`)
	if err != nil {
		return nil, fmt.Errorf("failed to get co-organizers: %w", err)
	}
	defer coRows.Close()

	for coRows.Next() {
		var eventID, userID string
		if err = coRows.Scan(&eventID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan co-organizer: %w", err)
		}
		if i, ok := index[eventID]; ok {
			events[i].CoOrganizers = append(events[i].CoOrganizers, userID)
		}
	}
	if err = coRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating co-organizers: %w", err)
	}

	return events, nil
}

// lockEventForManager loads the event creator under a row lock and checks
// that the requester is the creator or a co-organizer of the event.
func lockEventForManager(ctx context.Context, tx *sql.Tx, eventID, requesterID string) (createdBy string, err error) {
	err = tx.QueryRowContext(ctx, `SELECT created_by FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrEventNotFound
		}
		return "", fmt.Errorf("failed to lock event: %w", err)
	}

	if createdBy == requesterID {
		return createdBy, nil
	}

	var isCoOrganizer bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM event_coorganizers WHERE event_id = $1 AND user_id = $2)`,
		eventID, requesterID,
	).Scan(&isCoOrganizer)
	if err != nil {
		return "", fmt.Errorf("failed to check co-organizer: %w", err)
	}

	if !isCoOrganizer {
		return "", storage.ErrNotEventManager
	}

	return createdBy, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, eventID, requesterID string, upd storage.EventUpdate) (*models.Event, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = lockEventForManager(ctx, tx, eventID, requesterID); err != nil {
		return nil, err
	}

	var ev models.Event
	query := `
		SELECT id, name, description, date, price, capacity, tickets_sold, created_by
		FROM events
		WHERE id = $1`

	err = tx.QueryRowContext(ctx, query, eventID).Scan(
		&ev.ID, &ev.Name, &ev.Description, &ev.Date, &ev.Price, &ev.Capacity, &ev.TicketsSold, &ev.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if upd.Name != nil {
		ev.Name = *upd.Name
	}
	if upd.Description != nil {
		ev.Description = *upd.Description
	}
	if upd.Date != nil {
		ev.Date = *upd.Date
	}
	if upd.Price != nil {
		ev.Price = *upd.Price
	}
	if upd.Capacity != nil {
		if *upd.Capacity < ev.TicketsSold {
			return nil, storage.ErrCapacityTooLow
		}
		ev.Capacity = *upd.Capacity
	}

	updateQuery := `
		UPDATE events
		SET name = $2, description = $3, date = $4, price = $5, capacity = $6
		WHERE id = $1`

	_, err = tx.ExecContext(ctx, updateQuery, ev.ID, ev.Name, ev.Description, ev.Date, ev.Price, ev.Capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	coRows, err := tx.QueryContext(ctx, `SELECT user_id FROM event_coorganizers WHERE event_id = $1`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get co-organizers: %w", err)
	}
	defer coRows.Close()

	for coRows.Next() {
		var userID string
		if err = coRows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan co-organizer: %w", err)
		}
		ev.CoOrganizers = append(ev.CoOrganizers, userID)
	}
	if err = coRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating co-organizers: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &ev, nil
}

func (s *Storage) DeleteEvent(ctx context.Context, eventID, requesterID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdBy string
	err = tx.QueryRowContext(ctx, `SELECT created_by FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to lock event: %w", err)
	}

	if createdBy != requesterID {
		return storage.ErrNotEventManager
	}

	rows, err := tx.QueryContext(ctx, `SELECT user_id FROM event_coorganizers WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to get co-organizers: %w", err)
	}

	var coOrganizers []string
	for rows.Next() {
		var userID string
		if err = rows.Scan(&userID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan co-organizer: %w", err)
		}
		coOrganizers = append(coOrganizers, userID)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating co-organizers: %w", err)
	}
	rows.Close()

	if _, err = tx.ExecContext(ctx, `DELETE FROM event_coorganizers WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete co-organizers: %w", err)
	}

	// Demote only users left with no delegation on any other event.
	if len(coOrganizers) > 0 {
		demoteQuery := `
			UPDATE users
			SET role = 'Attendee'
			WHERE role = 'CoOrganizer'
			  AND id = ANY($1)
			  AND NOT EXISTS (SELECT 1 FROM event_coorganizers WHERE user_id = users.id)`

		if _, err = tx.ExecContext(ctx, demoteQuery, pq.Array(coOrganizers)); err != nil {
			return fmt.Errorf("failed to demote co-organizers: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete registrations: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return tx.Commit()
}

func (s *Storage) PurchaseTicket(ctx context.Context, eventID, userID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Conditional increment closes the read-check-write race: the row only
	// changes while tickets remain.
	res, err := tx.ExecContext(ctx,
		`UPDATE events SET tickets_sold = tickets_sold + 1 WHERE id = $1 AND tickets_sold < capacity`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment tickets sold: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		var exists bool
		err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check event: %w", err)
		}
		if !exists {
			return storage.ErrEventNotFound
		}
		return storage.ErrSoldOut
	}

	insertQuery := `
		INSERT INTO registrations (id, event_id, user_id, status, confirmed_at)
		VALUES ($1, $2, $3, 'Confirmed', NOW())`

	_, err = tx.ExecContext(ctx, insertQuery, uuid.NewString(), eventID, userID)
	if err != nil {
		// Partial unique index on (event_id, user_id) WHERE status = 'Confirmed';
		// rolling back also undoes the increment above.
		if isUniqueViolation(err) {
			return storage.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return tx.Commit()
}

func (s *Storage) CancelTicket(ctx context.Context, eventID, userID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE registrations
		 SET status = 'Cancelled', cancelled_at = NOW()
		 WHERE event_id = $1 AND user_id = $2 AND status = 'Confirmed'`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotRegistered
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET tickets_sold = tickets_sold - 1 WHERE id = $1 AND tickets_sold > 0`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement tickets sold: %w", err)
	}

	return tx.Commit()
}

func (s *Storage) TicketsByUser(ctx context.Context, userID string) ([]storage.TicketView, error) {
	query := `
		SELECT e.id, e.name, e.date, e.price, r.confirmed_at
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1 AND r.status = 'Confirmed'
		ORDER BY r.confirmed_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	defer rows.Close()

	var tickets []storage.TicketView
	for rows.Next() {
		var t storage.TicketView
		if err = rows.Scan(&t.EventID, &t.Name, &t.Date, &t.Price, &t.ConfirmedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

func (s *Storage) AttendeesByEvent(ctx context.Context, eventID, requesterID string) ([]storage.AttendeeView, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = lockEventForManager(ctx, tx, eventID, requesterID); err != nil {
		return nil, err
	}

	query := `
		SELECT u.id, u.username, r.confirmed_at
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1 AND r.status = 'Confirmed'
		ORDER BY r.confirmed_at ASC`

	rows, err := tx.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}
	defer rows.Close()

	var attendees []storage.AttendeeView
	for rows.Next() {
		var a storage.AttendeeView
		if err = rows.Scan(&a.UserID, &a.Username, &a.ConfirmedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendees: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return attendees, nil
}

func (s *Storage) SalesByOrganizer(ctx context.Context, organizerID string) ([]storage.EventSales, error) {
	query := `
		SELECT id, name, tickets_sold, tickets_sold * price
		FROM events
		WHERE created_by = $1
		ORDER BY date ASC`

	rows, err := s.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}
	defer rows.Close()

	var sales []storage.EventSales
	for rows.Next() {
		var es storage.EventSales
		if err = rows.Scan(&es.EventID, &es.Name, &es.TicketsSold, &es.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		sales = append(sales, es)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return sales, nil
}

func (s *Storage) AssignCoOrganizer(ctx context.Context, eventID, requesterID, targetID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdBy, err := lockEventForManager(ctx, tx, eventID, requesterID)
	if err != nil {
		return err
	}

	var targetRole string
	err = tx.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, targetID).Scan(&targetRole)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to lock target user: %w", err)
	}

	// The creator already manages the event.
	if targetID == createdBy {
		return storage.ErrAlreadyCoOrganizer
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_coorganizers (event_id, user_id) VALUES ($1, $2)`,
		eventID, targetID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyCoOrganizer
		}
		return fmt.Errorf("failed to add co-organizer: %w", err)
	}

	// Organizers keep their role; only attendees are promoted.
	if targetRole == models.RoleAttendee.String() {
		_, err = tx.ExecContext(ctx, `UPDATE users SET role = 'CoOrganizer' WHERE id = $1`, targetID)
		if err != nil {
			return fmt.Errorf("failed to promote co-organizer: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Storage) RemoveCoOrganizer(ctx context.Context, eventID, requesterID, targetID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = lockEventForManager(ctx, tx, eventID, requesterID); err != nil {
		return err
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, targetID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check target user: %w", err)
	}
	if !exists {
		return storage.ErrUserNotFound
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM event_coorganizers WHERE event_id = $1 AND user_id = $2`,
		eventID, targetID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove co-organizer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotCoOrganizer
	}

	// Demote only when the user holds no delegation on any other event.
	var remaining int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_coorganizers WHERE user_id = $1`, targetID).Scan(&remaining)
	if err != nil {
		return fmt.Errorf("failed to count delegations: %w", err)
	}

	if remaining == 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET role = 'Attendee' WHERE id = $1 AND role = 'CoOrganizer'`,
			targetID,
		)
		if err != nil {
			return fmt.Errorf("failed to demote co-organizer: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Storage) RevokeToken(ctx context.Context, token string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO revoked_tokens (token, created_at) VALUES ($1, NOW()) ON CONFLICT (token) DO NOTHING`,
		token,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *Storage) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	var revoked bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE token = $1)`,
		token,
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}

	return revoked, nil
}

func (s *Storage) PruneRevokedTokens(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE created_at < $1`,
		olderThan,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune revoked tokens: %w", err)
	}

	return res.RowsAffected()
}
