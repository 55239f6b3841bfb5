package backend

import (
	"fmt"

	"github.com/tengjizhang/trs/internal/model"
)

// Command is a request from the session loop to the executor.
type Command interface {
	fmt.Stringer
	isCommand()
}

type AddChannel struct {
	Link string
}

type RemoveChannel struct {
	ID int64
}

// MarkArticleRead sets the article's unread flag to Unread.
type MarkArticleRead struct {
	ID     int64
	Unread bool
}

// ListChannels asks for a snapshot. A Limit of zero means every channel.
type ListChannels struct {
	Limit int
}

func (AddChannel) isCommand()      {}
func (RemoveChannel) isCommand()   {}
func (MarkArticleRead) isCommand() {}
func (ListChannels) isCommand()    {}

func (c AddChannel) String() string    { return "add channel " + c.Link }
func (c RemoveChannel) String() string { return fmt.Sprintf("remove channel %d", c.ID) }
func (c ListChannels) String() string  { return fmt.Sprintf("list channels (limit %d)", c.Limit) }

func (c MarkArticleRead) String() string {
	if c.Unread {
		return fmt.Sprintf("mark article %d unread", c.ID)
	}
	return fmt.Sprintf("mark article %d read", c.ID)
}

// Event is published by the executor after each command.
type Event interface {
	isEvent()
}

// ReloadState carries a full snapshot of the persisted channels.
type ReloadState struct {
	Channels []model.StoredChannel
}

type CommandFailed struct {
	Command Command
	Err     error
}

func (ReloadState) isEvent()   {}
func (CommandFailed) isEvent() {}

func (e CommandFailed) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}
