package shell

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed helptext/usage.txt
var usageText string

func usageTopic(topic string) (string, error) {
	for _, line := range strings.Split(usageText, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == topic {
			return strings.TrimSpace(line), nil
		}
	}
	return "", fmt.Errorf("there is no help text for the topic %s", topic)
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(strings.TrimRight(usageText, "\n")), nil
	}
	text, err := usageTopic(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(text), nil
}
