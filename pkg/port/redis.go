// Chain serves its lists over the Redis protocol, so any Redis client can push to and read from them. Only list
// commands are supported; every key holds a list of the variant configured with --list_kind. Next to the standard
// commands, LREVERSE flips a list in place.

package port

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nobletooth/chain/pkg/lists"
	"github.com/nobletooth/chain/pkg/scan"
	"github.com/nobletooth/chain/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tidwall/redcon"
)

const RedisOk = "OK"

var (
	address = flag.String("address", ":6380", "The ip:port to listen on for Redis protocol.")

	commandsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_commands_total",
		Help: "Total number of handled Redis commands.",
	}, []string{"command", "status" /* ok | error */})
)

// knownCommands are the commands counted by their own name in `redis_commands_total`.
var knownCommands = map[string]struct{}{
	"PING": {}, "QUIT": {}, "LPUSH": {}, "RPUSH": {}, "LINSERT": {}, "LREM": {}, "LRANGE": {}, "LLEN": {},
	"LPOS": {}, "LREVERSE": {}, "DEL": {}, "KEYS": {},
}

// redisCommand represents a Redis command with its arguments.
type redisCommand struct {
	command string
	args    []string
}

// redisOutput conforms to a real Redis server output on non pub / sub commands.
type redisOutput struct {
	closeConnection bool     // Closes the connection if true.
	writeNil        bool     // Writes a nil value if true.
	err             *string  // Error to return if set.
	writeInt        *int     // Writes an integer value if set.
	writeArray      []string // Writes an array of bulk strings if `isArray` is set.
	isArray         bool
	writeString     string // Writes a string value otherwise.
}

func closeRedisConnection(msg string) redisOutput {
	return redisOutput{writeString: msg, closeConnection: true}
}

func writeRedisNil() redisOutput {
	return redisOutput{writeNil: true}
}

func writeRedisInt(i int) redisOutput {
	return redisOutput{writeInt: &i}
}

func writeRedisString(s string) redisOutput {
	return redisOutput{writeString: s}
}

func writeRedisArray(values []string) redisOutput {
	return redisOutput{writeArray: values, isArray: true}
}

func writeRedisError(err error) redisOutput {
	msg := "ERR " + err.Error()
	return redisOutput{err: &msg}
}

func wrongNumberOfArgs(command string) redisOutput {
	return writeRedisError(fmt.Errorf("wrong number of arguments for '%s' command", strings.ToLower(command)))
}

// replyWriter is the part of redcon.Conn used to answer a command.
type replyWriter interface {
	WriteString(str string)
	WriteError(msg string)
	WriteInt(num int)
	WriteNull()
	WriteArray(count int)
	WriteBulkString(bulk string)
	Close() error
}

var _ replyWriter = (redcon.Conn)(nil)

// writeOutput sends `output` over `conn`.
func writeOutput(conn replyWriter, output redisOutput) {
	switch {
	case output.err != nil:
		conn.WriteError(*output.err)
	case output.writeNil:
		conn.WriteNull()
	case output.writeInt != nil:
		conn.WriteInt(*output.writeInt)
	case output.isArray:
		conn.WriteArray(len(output.writeArray))
		for _, value := range output.writeArray {
			conn.WriteBulkString(value)
		}
	default:
		conn.WriteString(output.writeString)
	}
	if output.closeConnection {
		if err := conn.Close(); err != nil {
			slog.Error("Failed to close connection.", "error", err)
		}
	}
}

type redisHandler struct {
	keyspace *store.Keyspace
}

// newRedisHandler creates a new redisHandler.
func newRedisHandler(keyspace *store.Keyspace) (*redisHandler, error) {
	if keyspace == nil {
		return nil, errors.New("expected a non-nil keyspace")
	}
	return &redisHandler{keyspace: keyspace}, nil
}

// handle runs `cmd` and counts it in `redis_commands_total`.
func (rh *redisHandler) handle(cmd redisCommand) redisOutput {
	command := strings.ToUpper(cmd.command)
	output := rh.dispatch(command, cmd.args)

	label, status := "unknown", "ok"
	if _, known := knownCommands[command]; known {
		label = strings.ToLower(command)
	}
	if output.err != nil {
		status = "error"
	}
	commandsMetric.WithLabelValues(label, status).Inc()
	return output
}

func (rh *redisHandler) dispatch(command string, args []string) redisOutput {
	switch command {
	case "PING":
		return writeRedisString("PONG")
	case "QUIT":
		return closeRedisConnection(RedisOk)
	case "LPUSH", "RPUSH":
		if len(args) < 2 {
			return wrongNumberOfArgs(command)
		}
		return rh.push(args[0], args[1:], command == "RPUSH")
	case "LINSERT":
		if len(args) != 4 {
			return wrongNumberOfArgs(command)
		}
		return rh.insertAfter(args[0], args[1], args[2], args[3])
	case "LREM":
		if len(args) != 3 {
			return wrongNumberOfArgs(command)
		}
		return rh.remove(args[0], args[1], args[2])
	case "LRANGE":
		if len(args) != 3 {
			return wrongNumberOfArgs(command)
		}
		return rh.listRange(args[0], args[1], args[2])
	case "LLEN":
		if len(args) != 1 {
			return wrongNumberOfArgs(command)
		}
		return rh.length(args[0])
	case "LPOS":
		if len(args) != 2 {
			return wrongNumberOfArgs(command)
		}
		return rh.position(args[0], args[1])
	case "LREVERSE":
		if len(args) != 1 {
			return wrongNumberOfArgs(command)
		}
		return rh.reverse(args[0])
	case "DEL":
		if len(args) < 1 {
			return wrongNumberOfArgs(command)
		}
		return writeRedisInt(rh.keyspace.Delete(args...))
	case "KEYS":
		if len(args) != 1 {
			return wrongNumberOfArgs(command)
		}
		var keys []string
		for pair := range scan.MatchGlob(args[0], rh.keyspace.Keys()) {
			keys = append(keys, pair.Key)
		}
		return writeRedisArray(keys)
	default:
		return writeRedisError(fmt.Errorf("unknown command '%s'", command))
	}
}

// push adds `values` one by one to the front of the list, or to its back when `atBack` is set. Replies with the new
// length of the list.
func (rh *redisHandler) push(key string, values []string, atBack bool) redisOutput {
	length := 0
	err := rh.keyspace.Update(key, true /*create*/, func(list lists.Container[string]) error {
		for _, value := range values {
			if !atBack {
				list.Insert(value)
			} else if err := lists.Append(list, value); err != nil {
				return err
			}
		}
		length = list.Len()
		return nil
	})
	if err != nil {
		return writeRedisError(err)
	}
	return writeRedisInt(length)
}

// insertAfter implements `LINSERT key AFTER pivot element`. Replies with the new length, -1 if the pivot wasn't
// found and 0 if the key doesn't exist.
func (rh *redisHandler) insertAfter(key, where, pivot, element string) redisOutput {
	switch strings.ToUpper(where) {
	case "AFTER":
	case "BEFORE":
		return writeRedisError(fmt.Errorf("%w: LINSERT BEFORE", lists.ErrUnsupportedOperation))
	default:
		return writeRedisError(errors.New("syntax error"))
	}

	length := 0
	err := rh.keyspace.Update(key, false /*create*/, func(list lists.Container[string]) error {
		if err := lists.InsertAt(list, element, lists.Equal(pivot)); err != nil {
			return err
		}
		length = list.Len()
		return nil
	})
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		return writeRedisInt(0)
	case errors.Is(err, lists.ErrKeyNotFound):
		return writeRedisInt(-1)
	case err != nil:
		return writeRedisError(err)
	}
	return writeRedisInt(length)
}

// remove implements `LREM key count element`: removes the first `count` occurrences of `element`, or all of them
// when `count` is 0. Replies with the number of removed elements.
func (rh *redisHandler) remove(key, rawCount, element string) redisOutput {
	count, err := strconv.Atoi(rawCount)
	if err != nil {
		return writeRedisError(errors.New("value is not an integer or out of range"))
	}
	if count < 0 {
		return writeRedisError(fmt.Errorf("%w: LREM with a negative count", lists.ErrUnsupportedOperation))
	}

	removed := 0
	err = rh.keyspace.Update(key, false /*create*/, func(list lists.Container[string]) error {
		for count == 0 || removed < count {
			err := lists.Remove(list, element)
			if errors.Is(err, lists.ErrKeyNotFound) || errors.Is(err, lists.ErrEmptyList) {
				return nil
			}
			if err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return writeRedisError(err)
	}
	return writeRedisInt(removed)
}

// redisRange turns the inclusive, possibly negative `start` and `stop` indices of LRANGE into bounds within a list
// of `length` values. `ok` is false when the range selects nothing.
func redisRange(length, start, stop int) (from, to int, ok bool) {
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	start = max(start, 0)
	stop = min(stop, length-1)
	if start > stop {
		return 0, 0, false
	}
	return start, stop, true
}

// listRange implements `LRANGE key start stop`.
func (rh *redisHandler) listRange(key, rawStart, rawStop string) redisOutput {
	start, startErr := strconv.Atoi(rawStart)
	stop, stopErr := strconv.Atoi(rawStop)
	if startErr != nil || stopErr != nil {
		return writeRedisError(errors.New("value is not an integer or out of range"))
	}

	values := make([]string, 0)
	err := rh.keyspace.View(key, func(list lists.Container[string]) error {
		from, to, ok := redisRange(list.Len(), start, stop)
		if !ok {
			return nil
		}
		index := 0
		for value := range list.All() {
			if index > to {
				break
			}
			if index >= from {
				values = append(values, value)
			}
			index++
		}
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return writeRedisError(err)
	}
	return writeRedisArray(values)
}

// length implements `LLEN key`; a missing key is an empty list.
func (rh *redisHandler) length(key string) redisOutput {
	length := 0
	err := rh.keyspace.View(key, func(list lists.Container[string]) error {
		length = list.Len()
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return writeRedisError(err)
	}
	return writeRedisInt(length)
}

// position implements `LPOS key element` without options. Replies nil if `element` isn't in the list.
func (rh *redisHandler) position(key, element string) redisOutput {
	found := -1
	err := rh.keyspace.View(key, func(list lists.Container[string]) error {
		index := 0
		for value := range list.All() {
			if value == element {
				found = index
				break
			}
			index++
		}
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return writeRedisError(err)
	}
	if found < 0 {
		return writeRedisNil()
	}
	return writeRedisInt(found)
}

// reverse implements `LREVERSE key`. Reversing a missing key fails like reversing an empty list.
func (rh *redisHandler) reverse(key string) redisOutput {
	err := rh.keyspace.Update(key, false /*create*/, func(list lists.Container[string]) error {
		return lists.Reverse(list)
	})
	if errors.Is(err, store.ErrKeyNotFound) {
		err = fmt.Errorf("%w: %s", lists.ErrEmptyList, key)
	}
	if err != nil {
		return writeRedisError(err)
	}
	return writeRedisString(RedisOk)
}

// RunRedisServer serves the lists of `keyspace` over the Redis protocol until `ctx` is cancelled.
func RunRedisServer(ctx context.Context, keyspace *store.Keyspace) error {
	if *address == "" {
		return errors.New("expected a non-empty --address flag")
	}

	redisHandler, err := newRedisHandler(keyspace)
	if err != nil {
		return fmt.Errorf("failed to create a new redis handler: %w", err)
	}

	redisServer := redcon.NewServerNetwork("tcp" /*net*/, *address,
		/*handler*/ func(conn redcon.Conn, cmd redcon.Command) {
			// Convert redcon.Command to redisCommand.
			command := redisCommand{command: string(cmd.Args[0]), args: make([]string, len(cmd.Args)-1)}
			for i := 1; i < len(cmd.Args); i++ {
				command.args[i-1] = string(cmd.Args[i])
			}
			writeOutput(conn, redisHandler.handle(command))
		},
		/*accept*/ func(conn redcon.Conn) bool {
			slog.Debug("Accepted connection.", "remote", conn.RemoteAddr())
			return true // Accept all connections.
		},
		/*closed*/ func(conn redcon.Conn, err error) {
			if err != nil {
				slog.Debug("Connection closed with an error.", "remote", conn.RemoteAddr(), "error", err)
			}
		})

	listenSignal := make(chan error, 1)
	serverErrSignal := make(chan error, 1)
	go func() { serverErrSignal <- redisServer.ListenServeAndSignal(listenSignal) }()
	if err := <-listenSignal; err != nil {
		return fmt.Errorf("failed to listen on %s: %w", *address, err)
	}
	slog.Info("Serving lists over the Redis protocol.", "address", *address, "listKind", keyspace.Kind())

	select {
	case <-ctx.Done():
		closeErr := redisServer.Close()
		serveErr := <-serverErrSignal // Wait for the accept loop to exit.
		if exitErr := errors.Join(closeErr, serveErr); exitErr != nil {
			return fmt.Errorf("failed to stop the redis server: %w", exitErr)
		}
	case err := <-serverErrSignal:
		return fmt.Errorf("redis server stopped unexpectedly: %w", err)
	}

	return nil // Exited with no errors.
}
