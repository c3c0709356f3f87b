package room

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vladimirvolkov/freethrow/internal/game"
	"github.com/vladimirvolkov/freethrow/internal/ws"
)

// Conn is the client side of a room. *ws.Conn satisfies it.
type Conn interface {
	Send(msg ws.Message)
	ReadLoop(ctx context.Context) <-chan ws.Message
}

// Room runs one game session for one connected client.
type Room struct {
	id       string
	conn     Conn
	nickname string
	tuning   game.Tuning
	game     game.Game
	tickRate int

	inputs  []game.Input
	inputMu sync.Mutex
	tickNum atomic.Uint32 // last simulated tick, read by the pong reply

	cancel context.CancelFunc
	done   chan struct{}
}

func New(id string, conn Conn, nickname string, mode game.Mode, t game.Tuning) *Room {
	r := &Room{
		id:       id,
		conn:     conn,
		nickname: nickname,
		tuning:   t,
		tickRate: game.TickRate,
		done:     make(chan struct{}),
	}
	r.game = game.New(mode, t, game.Hooks{
		OnShot:     r.shotResolved,
		OnCancel:   r.shotCancelled,
		OnGameOver: r.gameOver,
	})
	return r
}

func (r *Room) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	r.send(ws.MsgGameStart, ws.GameStartPayload{
		SessionID: r.id,
		Mode:      string(r.game.Mode()),
		Nickname:  r.nickname,
		MaxShots:  r.tuning.MaxShots,
		Court:     ws.NewCourtPayload(r.tuning.Court),
	})

	go r.readLoop(ctx)

	go func() {
		r.gameLoop(ctx)
		close(r.done)
	}()
}

// Done returns a channel that closes when the room's game loop exits. It is
// valid before Start.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

func (r *Room) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Room) readLoop(ctx context.Context) {
	msgs := r.conn.ReadLoop(ctx)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				slog.Info("client left", "room", r.id)
				r.cancel()
				return
			}
			r.handleMessage(msg)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Room) handleMessage(msg ws.Message) {
	switch msg.Type {
	case ws.MsgKey:
		r.queue(game.Input{Kind: game.InputKey})

	case ws.MsgPointer:
		p, err := ws.DecodePayload[ws.PointerPayload](msg)
		if err != nil {
			return
		}
		in := game.Input{X: p.X, Y: p.Y}
		switch p.Phase {
		case ws.PointerDown:
			in.Kind = game.InputPointerDown
		case ws.PointerMove:
			in.Kind = game.InputPointerMove
		case ws.PointerUp:
			in.Kind = game.InputPointerUp
		default:
			return
		}
		r.queue(in)

	case ws.MsgRestart:
		r.queue(game.Input{Kind: game.InputRestart})

	case ws.MsgPing:
		ping, err := ws.DecodePayload[ws.PingPayload](msg)
		if err != nil {
			return
		}
		r.send(ws.MsgPong, ws.PongPayload{
			ClientTime: ping.ClientTime,
			ServerTime: uint64(time.Now().UnixMilli()),
		})
	}
}

func (r *Room) queue(in game.Input) {
	r.inputMu.Lock()
	r.inputs = append(r.inputs, in)
	r.inputMu.Unlock()
}

func (r *Room) gameLoop(ctx context.Context) {
	dt := time.Second / time.Duration(r.tickRate)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.tick(dt)
		case <-ctx.Done():
			return
		}
	}
}

// tick applies queued inputs in arrival order, steps the game once and
// broadcasts the resulting state.
func (r *Room) tick(dt time.Duration) {
	r.inputMu.Lock()
	inputs := r.inputs
	r.inputs = nil
	r.inputMu.Unlock()

	for _, in := range inputs {
		r.game.Handle(in)
	}
	r.game.Tick(dt)

	snap := r.game.Snapshot()
	r.tickNum.Store(snap.Tick)
	r.send(ws.MsgGameState, snap)
}

func (r *Room) shotResolved(res game.ShotResult) {
	slog.Debug("shot resolved", "room", r.id, "shot", res.Shot, "made", res.Made)
	r.send(ws.MsgShotResult, res)
}

func (r *Room) shotCancelled() {
	r.send(ws.MsgShotCancelled, nil)
}

func (r *Room) gameOver(sum game.Summary) {
	slog.Info("game over", "room", r.id, "nickname", r.nickname, "score", sum.Score, "max", sum.MaxShots)
	r.send(ws.MsgGameOver, sum)
}

func (r *Room) send(typ uint8, payload any) {
	msg, err := ws.NewMessage(typ, r.tickNum.Load(), payload)
	if err != nil {
		slog.Warn("encode message", "room", r.id, "type", typ, "err", err)
		return
	}
	r.conn.Send(msg)
}
