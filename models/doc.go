/*
Package models defines the domain and wire types shared across the server.

# Domain Types

  - User: a registered Telegram user. One row per telegram_id, created on
    first interaction and never mutated afterwards.
  - ChoiceEvent: one affirm/decline decision. Append-only; a user may have
    any number of events, including duplicates from redelivered updates.

# Status Tags

Every ChoiceEvent carries exactly one of:

	models.StatusAffirmed // "affirmed" (the ✅ button)
	models.StatusDeclined // "declined" (the ❌ button)

# Value Range

Dealt values are drawn uniformly from [0, ValueRange). The same bound is
enforced three times: by the dealer, by the store layer, and by a CHECK
constraint in the schema.

# Callback Tokens

Inline-keyboard buttons carry opaque callback data:

	random_number        → deal a new value
	affirm_<n>           → record <n> as affirmed
	decline_<n>          → record <n> as declined
*/
package models
