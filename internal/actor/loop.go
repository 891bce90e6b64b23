package actor

import (
	"errors"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// runLoop is the single, shared reception-and-dispatch algorithm used by
// both the cooperative and the blocking execution flavors. The two flavors
// differ only in which goroutine pool calls this function; the algorithm
// itself, and its lifecycle contract, are identical.
func runLoop[M Message, S any](
	actorCtx *Context[M], inbox *Inbox[M], behavior Actor[M, S],
	watch *Watch[S], heartbeat time.Duration,
) Termination {

	name := behavior.Name()
	provider, hasDefault := behavior.(DefaultMessageProvider[M])

	for {
		// 1. Kill switch checked before reception.
		if !actorCtx.KillSwitch().IsAlive() {
			return Termination{Kind: KillSwitch}
		}

		// 2. Record progress before any suspension point.
		actorCtx.Progress().Record()

		// 3. Messages are enabled iff Running. Fetch the default
		// message only when enabled: synthetic injection must never
		// happen while paused.
		messagesEnabled := actorCtx.State() == StateRunning

		var defaultMsg fn.Option[M]
		if hasDefault && messagesEnabled {
			defaultMsg = provider.DefaultMessage()
		}

		// 4. Receive, giving commands strict priority.
		reception := inbox.Recv(
			actorCtx.Done(), messagesEnabled, defaultMsg, heartbeat,
		)

		// 5. Record progress after reception.
		actorCtx.Progress().Record()

		// 6. Kill switch checked again, post-reception.
		if !actorCtx.KillSwitch().IsAlive() {
			return Termination{Kind: KillSwitch}
		}

		// 7. Dispatch.
		switch reception.Kind {
		case ReceptionCommand:
			if term, done := dispatchCommand(
				actorCtx, behavior, watch, reception.Command, name,
			); done {
				return term
			}

		case ReceptionMessage:
			if err := behavior.Receive(actorCtx, reception.Message); err != nil {
				if errors.Is(err, ErrSendFailed) {
					return Termination{
						Kind: DownstreamClosed, Err: err,
					}
				}
				return Termination{Kind: Failure, Err: err}
			}

		case ReceptionNone:
			if inbox.IsLastMailbox() {
				return Termination{Kind: Terminated}
			}

		case ReceptionDisconnect:
			return Termination{Kind: Terminated}
		}
	}
}

// dispatchCommand handles one priority command. done reports whether the
// loop should exit with the returned termination.
func dispatchCommand[M Message, S any](
	actorCtx *Context[M], behavior Actor[M, S], watch *Watch[S], cmd Command,
	name string,
) (Termination, bool) {

	switch cmd.Kind {
	case CmdPause:
		actorCtx.Pause()
		log.DebugS(actorCtx.Done(), "actor paused", "actor", name)
		return Termination{}, false

	case CmdResume:
		actorCtx.Resume()
		log.DebugS(actorCtx.Done(), "actor resumed", "actor", name)
		return Termination{}, false

	case CmdStop:
		cmd.Fulfil()
		return Termination{Kind: OnDemand}, true

	case CmdObserve:
		watch.Publish(behavior.ObservableState())
		cmd.Fulfil()
		return Termination{}, false

	default:
		return Termination{}, false
	}
}

// finishActor runs the shared exit sequence: mark Terminated, trip the kill
// switch on failure, call Finalize exactly once, publish the final
// snapshot, log, and release the context's own mailbox reference.
func finishActor[M Message, S any](
	actorCtx *Context[M], behavior Actor[M, S], watch *Watch[S],
	termination Termination,
) Termination {

	name := behavior.Name()
	actorCtx.Terminate()

	if termination.IsFailure() {
		actorCtx.KillSwitch().Kill()
	}

	if finalizer, ok := behavior.(Finalizer[M]); ok {
		if err := finalizer.Finalize(termination, actorCtx); err != nil {
			log.WarnS(actorCtx.Done(), "actor finalize error", err,
				"actor", name)
		}
	}

	watch.Publish(behavior.ObservableState())

	if termination.Err != nil {
		log.ErrorS(actorCtx.Done(), "actor terminated", termination.Err,
			"actor", name, "reason", termination.Kind.String())
	} else {
		log.InfoS(actorCtx.Done(), "actor terminated",
			"actor", name, "reason", termination.Kind.String())
	}

	actorCtx.close()

	return termination
}
