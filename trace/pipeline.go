package trace

import (
	"github.com/lunfardo314/easybf/engine"
	"github.com/lunfardo314/easybf/util/fifoqueue"
	"go.uber.org/zap"
)

// DefaultLimit is the number of buffered events after which new events are dropped
const DefaultLimit = 1 << 16

// Pipeline is an engine.Tracer which hands events to a consumer goroutine for logging,
// so the interpreter loop never waits for the logger
type Pipeline struct {
	log    *zap.SugaredLogger
	events *fifoqueue.FIFOQueue[engine.Event]
	done   chan struct{}
	count  int
}

func NewPipeline(globalLog *zap.SugaredLogger, limit ...int) *Pipeline {
	lim := DefaultLimit
	if len(limit) > 0 {
		lim = limit[0]
	}
	return &Pipeline{
		log:    globalLog.Named("trace"),
		events: fifoqueue.NewBounded[engine.Event](lim),
		done:   make(chan struct{}),
	}
}

func (pipe *Pipeline) Start() {
	go func() {
		pipe.log.Debugf("STARTED")
		pipe.events.Consume(func(ev engine.Event) {
			pipe.count++
			pipe.log.Infof("pc=%d %s(%d) cursor=%d cell=%d", ev.PC, ev.Op, ev.Arg, ev.Cursor, ev.Cell)
		})
		pipe.log.Debugf("STOPPED")
		close(pipe.done)
	}()
}

// Trace implements engine.Tracer
func (pipe *Pipeline) Trace(ev engine.Event) {
	pipe.events.Write(ev)
}

// Stop flushes remaining events and waits for the consumer. Started pipeline only
func (pipe *Pipeline) Stop() {
	pipe.events.Close()
	<-pipe.done
	if dropped := pipe.events.Dropped(); dropped > 0 {
		pipe.log.Warnf("%d trace events logged, %d dropped", pipe.count, dropped)
		return
	}
	pipe.log.Debugf("%d trace events logged", pipe.count)
}

// Logged is the number of events written to the log. Valid after Stop
func (pipe *Pipeline) Logged() int {
	return pipe.count
}

// Dropped is the number of events lost because the buffer was full
func (pipe *Pipeline) Dropped() uint64 {
	return pipe.events.Dropped()
}
