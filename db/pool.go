// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"bootstrapper-server/commons"

	"gorm.io/gorm"
)

var ErrPoolClosed = errors.New("db: pool is closed")

// Pool is a bounded set of persistent storage connections. MinConns handles
// are opened up front and recycled through a channel; when every pooled
// handle is busy for longer than the acquire timeout, Acquire opens a
// one-off connection for that single operation instead of blocking the
// caller indefinitely.
type Pool struct {
	cfg   Config
	conns chan *Conn

	mu     sync.Mutex
	closed bool
}

// OpenPool constructs a pool and pre-warms MinConns connections. The pooled
// population never exceeds MaxConns.
func OpenPool(cfg Config) (*Pool, error) {
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultMaxConns
	}
	if cfg.MinConns < 0 {
		cfg.MinConns = 0
	}
	if cfg.MinConns > cfg.MaxConns {
		cfg.MinConns = cfg.MaxConns
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = defaultAcquireTimeout
	}

	p := &Pool{
		cfg:   cfg,
		conns: make(chan *Conn, cfg.MaxConns),
	}
	for i := 0; i < cfg.MinConns; i++ {
		conn, err := cfg.open(true)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.conns <- conn
	}
	commons.Logger.Infof("Connection pool opened. dialect: %s, min: %d, max: %d",
		cfg.Dialect, cfg.MinConns, cfg.MaxConns)
	return p, nil
}

// Acquire returns a connection, waiting up to the acquire timeout for a
// pooled one. On timeout it falls back to opening a fresh unpooled
// connection, which Release will close rather than recycle.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if p.isClosed() {
		return nil, ErrPoolClosed
	}

	timer := time.NewTimer(p.cfg.AcquireTimeout)
	defer timer.Stop()

	select {
	case conn := <-p.conns:
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		if p.isClosed() {
			return nil, ErrPoolClosed
		}
		commons.Logger.Warn("Connection pool exhausted, opening direct connection")
		return p.cfg.open(false)
	}
}

// Release returns a pooled connection to the pool, replacing it with a
// freshly opened one when it is no longer usable. Unpooled fallback
// connections are closed outright. Release never reports an error to the
// caller; cleanup failures are logged so they cannot mask the result of the
// operation that used the connection.
func (p *Pool) Release(conn *Conn) {
	if conn == nil {
		return
	}
	if !conn.pooled {
		conn.close()
		return
	}

	if conn.healthy() {
		p.repool(conn)
		return
	}

	conn.close()
	replacement, err := p.cfg.open(true)
	if err != nil {
		commons.Logger.Errorf("Failed to replace broken pool connection: %v", err)
		return
	}
	p.repool(replacement)
}

// repool inserts a healthy pooled connection back into the channel. The
// closed check happens under the mutex, the same lock Close sets closed
// under, so an insertion can never slip in after Close has drained.
func (p *Pool) repool(conn *Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		conn.close()
		return
	}
	select {
	case p.conns <- conn:
	default:
		conn.close()
	}
}

// WithConn runs fn with an acquired connection and guarantees release on
// every exit path.
func (p *Pool) WithConn(ctx context.Context, fn func(conn *gorm.DB) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(conn)
	return fn(conn.DB.WithContext(ctx))
}

// Close marks the pool closed and drains the pooled connections. In-flight
// connections are closed as they are released.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	for {
		select {
		case conn := <-p.conns:
			conn.close()
		default:
			commons.Logger.Info("Connection pool closed")
			return
		}
	}
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
