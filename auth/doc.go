/*
Package auth provides constant-time secret validation.

Two secrets guard the server's non-Telegram surfaces:

  - The admin key (ADMIN_KEY), required in the X-Admin-Key header for
    operator endpoints such as webhook registration.
  - The webhook secret token (WEBHOOK_SECRET), optionally registered with
    Telegram and echoed back in the X-Telegram-Bot-Api-Secret-Token header
    on every delivery.

Both comparisons use hmac.Equal to avoid timing side channels.
*/
package auth
