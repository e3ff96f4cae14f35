/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])

CLI flags take precedence over environment variables.

# Settings

Required:

  - DATABASE_URL (-d): PostgreSQL connection string
  - BOT_TOKEN (--bot-token): Telegram bot token; startup is refused
    without it
  - ADMIN_KEY (--admin-key): secret for the X-Admin-Key operator header

Optional:

  - PORT (-p): server port (default: 8090)
  - WEBHOOK_SECRET (--webhook-secret): secret token registered with
    Telegram and verified on every inbound delivery
  - PUBLIC_URL (--public-url): public base URL used when registering the
    webhook
*/
package cliparse
