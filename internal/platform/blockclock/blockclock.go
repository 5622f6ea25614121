package blockclock

import (
	"sync/atomic"
	"time"
)

// BlocksPerSecond es la cadencia de la cadena (Somnia testnet).
const BlocksPerSecond = 6

// WallClock deriva el contador de bloques del reloj de pared: bloques
// transcurridos desde un instante génesis, a cadencia fija. Determinista
// hacia adelante (nunca retrocede) mientras el reloj del host no retroceda.
type WallClock struct {
	genesis time.Time
	now     func() time.Time
}

func NewWallClock(genesis time.Time) *WallClock {
	if genesis.IsZero() {
		genesis = time.Now()
	}
	return &WallClock{genesis: genesis, now: time.Now}
}

func (c *WallClock) Current() uint64 {
	elapsed := c.now().Sub(c.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed/time.Second) * BlocksPerSecond
}

// Manual es un clock controlado a mano (tests y modo demo).
type Manual struct {
	block atomic.Uint64
}

func NewManual(start uint64) *Manual {
	m := &Manual{}
	m.block.Store(start)
	return m
}

func (m *Manual) Current() uint64 { return m.block.Load() }

func (m *Manual) Advance(blocks uint64) uint64 { return m.block.Add(blocks) }

func (m *Manual) Set(block uint64) { m.block.Store(block) }
