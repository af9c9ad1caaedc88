package bot

import (
	"fmt"

	"github.com/eatmoreapple/openwechat"
)

// Run logs in and blocks until the session ends. The message handler is
// injected so the bot package stays free of command logic.
func Run(handler func(*openwechat.Message)) error {
	bot := openwechat.DefaultBot(openwechat.Desktop)

	// Register QR code callback
	bot.UUIDCallback = openwechat.PrintlnQrcodeUrl

	if err := bot.Login(); err != nil {
		return fmt.Errorf("login failed: %v", err)
	}

	bot.MessageHandler = handler

	// Block until exit
	bot.Block()
	return nil
}
