package store

import (
	"context"
	"database/sql"
	"time"
)

type (
	// Capture is one relayed packet as it was seen on the wire.
	Capture struct {
		Session    string
		Seq        int64
		FromVM     bool
		PacketID   int32
		Flags      byte
		Command    *uint16
		ErrorCode  *uint16
		Packet     []byte
		CapturedAt time.Time
	}

	SessionSummary struct {
		Session string
		Packets int64
		Bytes   int64
		First   time.Time
		Last    time.Time
	}

	CaptureOps interface {
		// Append stores c assigning the next sequence number of its session.
		Append(ctx context.Context, c Capture) (int64, error)
		List(ctx context.Context, session string) ([]Capture, error)
		Sessions(ctx context.Context) ([]SessionSummary, error)
	}

	captureOps struct {
		sqler Ops

		clock txclock
	}
)

func (c *captureOps) Append(ctx context.Context, capture Capture) (int64, error) {
	if err := c.sqler.Err(); err != nil {
		return 0, err
	}
	var seq int64
	err := c.sqler.QueryRowContext(ctx, "select coalesce(max(seq), 0) + 1 from dt_captures where session_id = $1", capture.Session).Scan(&seq)
	if err != nil {
		c.sqler.Fail(err)
		return 0, err
	}
	capturedAt := capture.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = c.clock.ts
	}
	_, err = c.sqler.ExecContext(ctx,
		`insert into dt_captures
		(session_id, seq, from_vm, packet_id, packet_flags, command, error_code, packet, clk_captured_at_unixms, clk_trid)
		values
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		capture.Session, seq, capture.FromVM, capture.PacketID, capture.Flags,
		nullable(capture.Command), nullable(capture.ErrorCode), capture.Packet,
		capturedAt.UnixMilli(), c.clock.trid)
	if err != nil {
		c.sqler.Fail(err)
		return 0, err
	}
	return seq, nil
}

func (c *captureOps) List(ctx context.Context, session string) ([]Capture, error) {
	if err := c.sqler.Err(); err != nil {
		return nil, err
	}
	rows, err := c.sqler.QueryContext(ctx,
		`select seq, from_vm, packet_id, packet_flags, command, error_code, packet, clk_captured_at_unixms
		from dt_captures where session_id = $1 order by seq`, session)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []Capture
	for rows.Next() {
		var (
			item      = Capture{Session: session}
			command   sql.NullInt32
			errorCode sql.NullInt32
			unixms    int64
		)
		err := rows.Scan(&item.Seq, &item.FromVM, &item.PacketID, &item.Flags, &command, &errorCode, &item.Packet, &unixms)
		if err != nil {
			return nil, err
		}
		item.Command = fromNullable(command)
		item.ErrorCode = fromNullable(errorCode)
		item.CapturedAt = time.UnixMilli(unixms)
		ret = append(ret, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return nil, ErrUnknownSession
	}
	return ret, nil
}

func (c *captureOps) Sessions(ctx context.Context) ([]SessionSummary, error) {
	if err := c.sqler.Err(); err != nil {
		return nil, err
	}
	rows, err := c.sqler.QueryContext(ctx,
		`select session_id, count(*), sum(length(packet)), min(clk_captured_at_unixms), max(clk_captured_at_unixms)
		from dt_captures group by session_id order by 4`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []SessionSummary
	for rows.Next() {
		var (
			item        SessionSummary
			first, last int64
		)
		if err := rows.Scan(&item.Session, &item.Packets, &item.Bytes, &first, &last); err != nil {
			return nil, err
		}
		item.First = time.UnixMilli(first)
		item.Last = time.UnixMilli(last)
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func nullable(v *uint16) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func fromNullable(v sql.NullInt32) *uint16 {
	if !v.Valid {
		return nil
	}
	u := uint16(v.Int32)
	return &u
}
