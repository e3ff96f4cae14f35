/*
Package bot classifies inbound Telegram updates and dispatches them.

# Classification

Classify turns a raw update into one of four event variants:

  - Registration: the /start command
  - ChoiceRequest: the "Random Number" button (token random_number)
  - ChoiceDecision: an affirm_<n> or decline_<n> button
  - Unrecognized: everything else

# Dispatch Policy

The fast path (any user-visible response) is always issued before, and
independently of, the slow path (any store mutation). Per variant:

  - Registration: welcome sent immediately; user registration runs in a
    detached goroutine with its own context and error boundary. Nothing
    awaits it.
  - ChoiceRequest: acknowledge, deal a uniform random value, send it with
    paired affirm/decline buttons. No store access at all.
  - ChoiceDecision: acknowledge and edit the visible message immediately,
    then block - bounded by the broker's timeouts - on EnsureUser followed
    by RecordChoice. A persistence failure never reverts the edit; it is
    logged as a lost event and not retried within the invocation.

The asymmetry is deliberate: a lost registration only delays a display-name
row, while a lost decision is data loss for a user-initiated action, so the
decision path pays the latency of waiting for a best-effort commit.
*/
package bot
