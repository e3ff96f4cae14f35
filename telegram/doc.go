/*
Package telegram wraps the outbound Telegram Bot API.

The Emitter exposes the three user-visible operations the pipeline needs -
acknowledge an interaction, send a message, edit a message - plus webhook
registration for the admin surface. Each call is fire-and-observe: bounded
by a per-call HTTP timeout, logged on failure, and never fatal to the
caller. The only recovery available for a failed acknowledgment is an
alternate alert-style attempt, which AckInteraction performs itself.

Construction validates the bot token against the platform, so a
misconfigured process fails at startup instead of silently dropping every
outbound call.
*/
package telegram
